package command

// The catalog is the full command surface, grouped by category. Tokens
// are globally unique across canonical names and aliases; NewRegistry
// refuses to load a catalog that breaks that rule. The original
// platform shipped a handful of cross-category collisions, so some
// historical aliases were renamed rather than dropped (admin merchant
// rejection became "deny", store boosting lost its "promote" alias to
// group moderation).

var categoryOrder = []categoryMeta{
	{CategoryShopping, "Shopping", "🛍️"},
	{CategoryCart, "Cart & Checkout", "🛒"},
	{CategoryOrders, "Orders", "📦"},
	{CategoryAccount, "Account", "👤"},
	{CategoryDeals, "Deals & Promotions", "🎉"},
	{CategoryMerchant, "Merchant", "💼"},
	{CategoryGroup, "Group Management", "👥"},
	{CategoryAdmin, "Admin", "⚙️"},
	{CategoryEntertainment, "Entertainment", "🎮"},
	{CategoryTools, "Tools & Utilities", "🔧"},
	{CategoryInfo, "Information", "ℹ️"},
	{CategoryOwner, "Owner", "👑"},
}

var catalog = []Descriptor{
	// Shopping
	{Canonical: "menu", Aliases: []string{"m"}, Name: "Menu", Description: "Browse all products", Usage: "!menu", Category: CategoryShopping},
	{Canonical: "search", Aliases: []string{"find", "s"}, Name: "Search", Description: "Search for products", Usage: "!search <query>", RequiresArgs: true, Category: CategoryShopping},
	{Canonical: "categories", Aliases: []string{"cat", "browse"}, Name: "Categories", Description: "Shop by category", Usage: "!categories", Category: CategoryShopping},
	{Canonical: "nearby", Aliases: []string{"stores", "near"}, Name: "Nearby Stores", Description: "Find nearby stores", Usage: "!nearby", Category: CategoryShopping},
	{Canonical: "products", Aliases: []string{"prod"}, Name: "Products", Description: "View all products", Usage: "!products", Category: CategoryShopping},
	{Canonical: "storedetails", Aliases: []string{"store", "seller"}, Name: "Store Details", Description: "View store information", Usage: "!storedetails <store_id>", RequiresArgs: true, Category: CategoryShopping},

	// Cart & checkout
	{Canonical: "cart", Aliases: []string{"c", "bag"}, Name: "View Cart", Description: "View your shopping cart", Usage: "!cart", Category: CategoryCart},
	{Canonical: "add", Aliases: []string{"addcart", "additem"}, Name: "Add to Cart", Description: "Add item to cart", Usage: "!add <product_id> <qty>", RequiresArgs: true, Category: CategoryCart},
	{Canonical: "remove", Aliases: []string{"rm", "del"}, Name: "Remove from Cart", Description: "Remove item from cart", Usage: "!remove <index>", RequiresArgs: true, Category: CategoryCart},
	{Canonical: "clear", Aliases: []string{"clearcart", "empty"}, Name: "Clear Cart", Description: "Clear entire cart", Usage: "!clear", Category: CategoryCart},
	{Canonical: "checkout", Aliases: []string{"pay", "purchase"}, Name: "Checkout", Description: "Proceed to payment", Usage: "!checkout", Category: CategoryCart},

	// Orders
	{Canonical: "orders", Aliases: []string{"myorders", "history"}, Name: "My Orders", Description: "View order history", Usage: "!orders", Category: CategoryOrders},
	{Canonical: "track", Aliases: []string{"status", "delivery"}, Name: "Track Order", Description: "Track order status", Usage: "!track <order_id>", RequiresArgs: true, Category: CategoryOrders},
	{Canonical: "reorder", Aliases: []string{"again"}, Name: "Reorder", Description: "Reorder from previous purchase", Usage: "!reorder <order_id>", RequiresArgs: true, Category: CategoryOrders},
	{Canonical: "rate", Aliases: []string{"review", "rateorder"}, Name: "Rate Order", Description: "Rate an order", Usage: "!rate <order_id> <rating>", RequiresArgs: true, Category: CategoryOrders},

	// Account
	{Canonical: "profile", Aliases: []string{"me", "account"}, Name: "My Profile", Description: "View your profile", Usage: "!profile", Category: CategoryAccount},
	{Canonical: "favorites", Aliases: []string{"fav", "wishlist"}, Name: "Favorites", Description: "View favorite items", Usage: "!favorites", Category: CategoryAccount},

	// Deals
	{Canonical: "deals", Aliases: []string{"offers", "special"}, Name: "Today's Deals", Description: "View today's deals", Usage: "!deals", Category: CategoryDeals},
	{Canonical: "trending", Aliases: []string{"popular", "hot"}, Name: "Trending", Description: "View trending products", Usage: "!trending", Category: CategoryDeals},
	{Canonical: "promo", Aliases: []string{"coupon", "discount"}, Name: "Promotions", Description: "View promotions and coupons", Usage: "!promo", Category: CategoryDeals},
	{Canonical: "featured", Aliases: []string{"spotlight"}, Name: "Featured", Description: "View featured products", Usage: "!featured", Category: CategoryDeals},

	// Merchant
	{Canonical: "merchant", Aliases: []string{"mm"}, Name: "Merchant Menu", Description: "View merchant commands", Usage: "!merchant", Category: CategoryMerchant},
	{Canonical: "dashboard", Aliases: []string{"db", "overview"}, Name: "Dashboard", Description: "View merchant dashboard", Usage: "!dashboard", Category: CategoryMerchant},
	{Canonical: "inventory", Aliases: []string{"inv", "stock"}, Name: "Inventory", Description: "Manage inventory", Usage: "!inventory", Category: CategoryMerchant},
	{Canonical: "analytics", Aliases: []string{"report"}, Name: "Analytics", Description: "View sales analytics", Usage: "!analytics", Category: CategoryMerchant},
	{Canonical: "merchantorders", Aliases: []string{"sellerorders"}, Name: "Merchant Orders", Description: "View incoming orders", Usage: "!merchantorders", Category: CategoryMerchant},
	{Canonical: "accept", Aliases: []string{"acceptorder"}, Name: "Accept Order", Description: "Accept pending order", Usage: "!accept <order_id>", RequiresArgs: true, Category: CategoryMerchant},
	{Canonical: "reject", Aliases: []string{"declineorder"}, Name: "Reject Order", Description: "Reject order", Usage: "!reject <order_id> <reason>", RequiresArgs: true, Category: CategoryMerchant},
	{Canonical: "updatestatus", Aliases: []string{"setstatus"}, Name: "Update Status", Description: "Update order status", Usage: "!updatestatus <order_id> <status>", RequiresArgs: true, Category: CategoryMerchant},
	{Canonical: "storehours", Aliases: []string{"hours"}, Name: "Store Hours", Description: "Set store hours", Usage: "!storehours <open> <close>", RequiresArgs: true, Category: CategoryMerchant},
	{Canonical: "boost", Aliases: []string{"advertise"}, Name: "Boost Store", Description: "Boost store visibility", Usage: "!boost <duration>", RequiresArgs: true, Category: CategoryMerchant},
	{Canonical: "tips", Aliases: []string{"guide"}, Name: "Tips & Help", Description: "Get merchant tips", Usage: "!tips", Category: CategoryMerchant},

	// Group management
	{Canonical: "groupmenu", Aliases: []string{"gm", "grouptools"}, Name: "Group Menu", Description: "View group commands", Usage: "!groupmenu", Category: CategoryGroup},
	{Canonical: "groupinfo", Aliases: []string{"ginfo"}, Name: "Group Info", Description: "Show group information", Usage: "!groupinfo", Category: CategoryGroup},
	{Canonical: "members", Aliases: []string{"memberlist"}, Name: "Member List", Description: "List group members", Usage: "!members", Category: CategoryGroup},
	{Canonical: "groupstats", Aliases: []string{"gstats"}, Name: "Group Stats", Description: "View group statistics", Usage: "!groupstats", Category: CategoryGroup},
	{Canonical: "promote", Aliases: []string{"makeadmin"}, Name: "Promote Member", Description: "Promote member to admin", Usage: "!promote <phone>", RequiresArgs: true, Category: CategoryGroup},
	{Canonical: "demote", Aliases: []string{"unadmin"}, Name: "Demote Admin", Description: "Demote admin to member", Usage: "!demote <phone>", RequiresArgs: true, Category: CategoryGroup},
	{Canonical: "kick", Aliases: []string{"ban"}, Name: "Remove Member", Description: "Remove member from group", Usage: "!kick <phone>", RequiresArgs: true, Category: CategoryGroup},
	{Canonical: "announce", Aliases: []string{"announcement"}, Name: "Announce", Description: "Make group announcement", Usage: "!announce <message>", RequiresArgs: true, Category: CategoryGroup},

	// Admin
	{Canonical: "admin", Aliases: []string{"am", "admintools"}, Name: "Admin Menu", Description: "View admin commands", Usage: "!admin", Category: CategoryAdmin},
	{Canonical: "merchants", Aliases: []string{"sellers"}, Name: "Manage Merchants", Description: "Manage merchants on platform", Usage: "!merchants", Category: CategoryAdmin},
	{Canonical: "approve", Aliases: []string{"approvemerchant"}, Name: "Approve Merchant", Description: "Approve merchant application", Usage: "!approve <merchant_id>", RequiresArgs: true, Category: CategoryAdmin},
	{Canonical: "deny", Aliases: []string{"rejectmerchant"}, Name: "Reject Merchant", Description: "Reject merchant application", Usage: "!deny <merchant_id> <reason>", RequiresArgs: true, Category: CategoryAdmin},
	{Canonical: "suspend", Aliases: []string{"block"}, Name: "Suspend Merchant", Description: "Suspend merchant account", Usage: "!suspend <merchant_id> <reason>", RequiresArgs: true, Category: CategoryAdmin},
	{Canonical: "broadcast", Name: "Broadcast Message", Description: "Send broadcast to users", Usage: "!broadcast <message>", RequiresArgs: true, Category: CategoryAdmin},
	{Canonical: "sales", Aliases: []string{"revenue"}, Name: "Sales Report", Description: "View sales report", Usage: "!sales", Category: CategoryAdmin},
	{Canonical: "logs", Aliases: []string{"log", "activity"}, Name: "View Logs", Description: "View recent activity", Usage: "!logs", Category: CategoryAdmin},
	{Canonical: "adminstats", Aliases: []string{"platformstats"}, Name: "Platform Stats", Description: "View platform statistics", Usage: "!adminstats", Category: CategoryAdmin},
	{Canonical: "alerts", Aliases: []string{"notify"}, Name: "Alerts", Description: "View system alerts", Usage: "!alerts", Category: CategoryAdmin},

	// Entertainment
	{Canonical: "fun", Aliases: []string{"games"}, Name: "Fun Menu", Description: "View fun games", Usage: "!fun", Category: CategoryEntertainment},
	{Canonical: "dice", Aliases: []string{"roll"}, Name: "Dice Game", Description: "Roll the dice", Usage: "!dice", Category: CategoryEntertainment},
	{Canonical: "coin", Aliases: []string{"flip"}, Name: "Coin Flip", Description: "Flip a coin", Usage: "!coin", Category: CategoryEntertainment},
	{Canonical: "lucky", Aliases: []string{"fortune"}, Name: "Lucky Number", Description: "Get lucky number", Usage: "!lucky", Category: CategoryEntertainment},
	{Canonical: "truth", Aliases: []string{"dare", "tod"}, Name: "Truth or Dare", Description: "Play truth or dare", Usage: "!truth", Category: CategoryEntertainment},
	{Canonical: "joke", Aliases: []string{"laugh"}, Name: "Random Joke", Description: "Get a random joke", Usage: "!joke", Category: CategoryEntertainment},
	{Canonical: "quote", Aliases: []string{"inspire"}, Name: "Inspirational Quote", Description: "Get inspirational quote", Usage: "!quote", Category: CategoryEntertainment},
	{Canonical: "riddle", Aliases: []string{"puzzle"}, Name: "Riddle", Description: "Solve a riddle", Usage: "!riddle", Category: CategoryEntertainment},
	{Canonical: "8ball", Aliases: []string{"magic", "ball"}, Name: "Magic 8 Ball", Description: "Ask magic 8 ball", Usage: "!8ball <question>", RequiresArgs: true, Category: CategoryEntertainment},
	{Canonical: "rather", Aliases: []string{"wyr"}, Name: "Would You Rather", Description: "Would you rather question", Usage: "!rather", Category: CategoryEntertainment},
	{Canonical: "trivia", Aliases: []string{"quiz"}, Name: "Trivia Quiz", Description: "Play trivia quiz", Usage: "!trivia", Category: CategoryEntertainment},

	// Tools
	{Canonical: "tools", Aliases: []string{"utilities", "util"}, Name: "Tools Menu", Description: "View available tools", Usage: "!tools", Category: CategoryTools},
	{Canonical: "calc", Aliases: []string{"calculator", "math"}, Name: "Calculator", Description: "Calculate expressions", Usage: "!calc <expression>", RequiresArgs: true, Category: CategoryTools},
	{Canonical: "shorten", Aliases: []string{"short"}, Name: "Shorten URL", Description: "Shorten a URL", Usage: "!shorten <url>", RequiresArgs: true, Category: CategoryTools},
	{Canonical: "weather", Aliases: []string{"forecast"}, Name: "Weather", Description: "Get weather info", Usage: "!weather <location>", RequiresArgs: true, Category: CategoryTools},

	// Information
	{Canonical: "help", Aliases: []string{"h", "?"}, Name: "Help", Description: "Get help on commands", Usage: "!help [command]", Category: CategoryInfo},
	{Canonical: "about", Aliases: []string{"version"}, Name: "About", Description: "About this bot", Usage: "!about", Category: CategoryInfo},
	{Canonical: "ping", Aliases: []string{"pong"}, Name: "Ping", Description: "Check bot status", Usage: "!ping", Category: CategoryInfo},
	{Canonical: "uptime", Aliases: []string{"alive"}, Name: "Uptime", Description: "Check bot uptime", Usage: "!uptime", Category: CategoryInfo},
	{Canonical: "support", Aliases: []string{"contact"}, Name: "Support", Description: "Get support contact", Usage: "!support", Category: CategoryInfo},
	{Canonical: "terms", Aliases: []string{"tos"}, Name: "Terms", Description: "View terms of service", Usage: "!terms", Category: CategoryInfo},
	{Canonical: "privacy", Aliases: []string{"gdpr"}, Name: "Privacy", Description: "View privacy policy", Usage: "!privacy", Category: CategoryInfo},

	// Owner
	{Canonical: "owner", Aliases: []string{"om"}, Name: "Owner Menu", Description: "View owner commands", Usage: "!owner", Category: CategoryOwner},
	{Canonical: "backup", Aliases: []string{"export"}, Name: "Backup", Description: "Snapshot runtime state", Usage: "!backup", Category: CategoryOwner},
	{Canonical: "restart", Aliases: []string{"reboot"}, Name: "Restart", Description: "Request bot restart", Usage: "!restart", Category: CategoryOwner},
	{Canonical: "blocklist", Aliases: []string{"blocked"}, Name: "Block List", Description: "View blocked users", Usage: "!blocklist", Category: CategoryOwner},
}
