// Package handlers implements the category command handlers. Each
// handler is a pure function from (command, args, context) to a reply
// descriptor; sending is someone else's job.
package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tnyamukapa/shopbot/internal/backend"
	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
	"github.com/tnyamukapa/shopbot/internal/session"
)

const currency = "ZWL"

// Customer serves the shopping, cart, orders, account and deals
// categories.
func Customer(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	switch d.Canonical {
	case "menu":
		return productMenu(ctx, bctx)
	case "search":
		return searchProducts(ctx, strings.Join(args, " "), bctx)
	case "categories":
		return categoryList(), nil
	case "nearby":
		return nearbyStores(), nil
	case "products":
		return productMenu(ctx, bctx)
	case "storedetails":
		return storeDetails(ctx, args[0], bctx)
	case "cart":
		return showCart(bctx)
	case "add":
		return addToCart(ctx, args, bctx)
	case "remove":
		return removeFromCart(args[0], bctx)
	case "clear":
		bctx.Sessions.ClearCart(bctx.UserID)
		return reply.Text("✨ Cart cleared!"), nil
	case "checkout":
		return checkout(ctx, bctx)
	case "orders":
		return orderHistory(ctx, bctx)
	case "track":
		return trackOrder(ctx, args[0], bctx)
	case "reorder":
		return reorder(ctx, args[0], bctx)
	case "rate":
		return rateOrder(ctx, args, bctx)
	case "profile":
		return profile(bctx), nil
	case "favorites":
		return reply.Text("You have no favorites yet.\nBrowse with !menu and tap what you like."), nil
	case "deals":
		return collectionMenu(ctx, "deals", "🎉 TODAY'S DEALS", bctx)
	case "trending":
		return collectionMenu(ctx, "trending", "🔥 TRENDING", bctx)
	case "featured":
		return collectionMenu(ctx, "featured", "⭐ FEATURED", bctx)
	case "promo":
		return reply.Text("🎟️ *PROMOTIONS*\n\nNo active promo codes right now.\nCheck !deals for today's specials."), nil
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "customer: unrouted command %q", d.Canonical)
	}
}

func productRows(products []backend.Product) []reply.Row {
	rows := make([]reply.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, reply.Row{
			ID:          "add:" + p.ID,
			Title:       p.Name,
			Description: fmt.Sprintf("%s %.2f • ⭐ %.1f • %s", currency, p.Price, p.Rating, p.MerchantName),
		})
	}
	return rows
}

func productMenu(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	products, err := bctx.Backend.Products(ctx)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load products", err)
	}
	if len(products) == 0 {
		return reply.Reply{}, boterr.New(boterr.NotFound, "No products available right now. Please check back later.")
	}
	if len(products) > 10 {
		products = products[:10]
	}
	return reply.List(
		"Menu",
		fmt.Sprintf("🛒 *MENU - PRODUCTS*\n\nBrowse %d popular items", len(products)),
		[]reply.Section{{Title: "Available Products", Rows: productRows(products)}},
		"Tap to add to cart",
	), nil
}

func searchProducts(ctx context.Context, query string, bctx *dispatch.Context) (reply.Reply, error) {
	if len(query) < 2 {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Search query too short.\nUse at least 2 characters, e.g. !search pizza")
	}
	products, err := bctx.Backend.SearchProducts(ctx, query)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "search products", err)
	}
	if len(products) == 0 {
		return reply.Reply{}, boterr.Newf(boterr.NotFound, "No products found for %q.\nTry different keywords or !menu to see everything.", query)
	}
	footer := "Tap to add"
	if len(products) > 10 {
		footer = fmt.Sprintf("Showing 10 of %d", len(products))
		products = products[:10]
	}
	r := reply.List(
		"Search Results",
		fmt.Sprintf("🔎 Found %d items for %q", len(products), query),
		[]reply.Section{{Title: "Products", Rows: productRows(products)}},
		"Tap to add",
	)
	r.Footer = footer
	return r, nil
}

func collectionMenu(ctx context.Context, collection, title string, bctx *dispatch.Context) (reply.Reply, error) {
	products, err := bctx.Backend.ProductsBy(ctx, collection)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load "+collection, err)
	}
	if len(products) == 0 {
		return reply.Reply{}, boterr.Newf(boterr.NotFound, "Nothing in %s right now.", collection)
	}
	return reply.List(
		title,
		fmt.Sprintf("*%s*\n\n%d items", title, len(products)),
		[]reply.Section{{Title: "Products", Rows: productRows(products)}},
		"Tap to add",
	), nil
}

func categoryList() reply.Reply {
	cats := []reply.Row{
		{ID: "search:food", Title: "🍔 Food & Restaurants", Description: "Tap to browse"},
		{ID: "search:retail", Title: "🛍️ Retail & Shopping", Description: "Tap to browse"},
		{ID: "search:books", Title: "📚 Books & Media", Description: "Tap to browse"},
		{ID: "search:fashion", Title: "👕 Fashion & Apparel", Description: "Tap to browse"},
		{ID: "search:health", Title: "🏥 Health & Wellness", Description: "Tap to browse"},
		{ID: "search:electronics", Title: "⚙️ Electronics", Description: "Tap to browse"},
		{ID: "search:groceries", Title: "🌿 Groceries", Description: "Tap to browse"},
	}
	return reply.List("Categories", "📂 *CATEGORIES*\n\nBrowse by category", []reply.Section{{Title: "Available Categories", Rows: cats}}, "Browse")
}

func nearbyStores() reply.Reply {
	stores := []reply.Row{
		{ID: "storedetails:store_1", Title: "🏪 Supa Stores", Description: "2km • ⭐ 4.9"},
		{ID: "storedetails:store_2", Title: "🏬 Quick Mart", Description: "3.5km • ⭐ 4.6"},
		{ID: "storedetails:store_3", Title: "🥖 Local Bakery", Description: "1.2km • ⭐ 4.9"},
	}
	return reply.List("Stores Near You", "📍 *STORES NEAR YOU*", []reply.Section{{Title: "Top Stores", Rows: stores}}, "View")
}

func storeDetails(ctx context.Context, storeID string, bctx *dispatch.Context) (reply.Reply, error) {
	m, err := bctx.Backend.MerchantProfile(ctx, storeID)
	if err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "Store not found.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load store", err)
	}
	state := "🔴 Closed"
	if m.Open {
		state = "🟢 Open"
	}
	return reply.Textf("*🏪 %s*\n\n⭐ %.1f\n📍 %s\n📞 +%s\n%s", m.BusinessName, m.Rating, m.Address, m.Phone, state), nil
}

func showCart(bctx *dispatch.Context) (reply.Reply, error) {
	cart := bctx.Sessions.Cart(bctx.UserID)
	if len(cart.Items) == 0 {
		return reply.Reply{}, boterr.New(boterr.NotFound, "Your cart is empty.\nBrowse items with !menu or !search <item>.")
	}

	var b strings.Builder
	b.WriteString("*🛒 YOUR CART*\n━━━━━━━━━━━━━\n\n")
	for i, item := range cart.Items {
		fmt.Fprintf(&b, "%d. %s x%d = %s %.2f\n", i+1, item.Name, item.Quantity, currency, item.UnitPrice*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\n💰 *Total: %s %.2f*", currency, cart.Total)

	return reply.Buttons("", b.String(), []reply.Button{
		{ID: "checkout", Text: "✅ Checkout"},
		{ID: "clear", Text: "🗑️ Clear Cart"},
		{ID: "menu", Text: "➕ Add More"},
	}), nil
}

func addToCart(ctx context.Context, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	productID := args[0]
	// A bare product pick from a menu row means one unit.
	quantity := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return reply.Reply{}, boterr.New(boterr.InvalidQuantity, "Invalid quantity. Must be a whole number of at least 1.")
		}
		quantity = n
	}

	product, err := bctx.Backend.Product(ctx, productID)
	if err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "Product not found.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load product", err)
	}

	cart, err := bctx.Sessions.AddItem(bctx.UserID, session.CartItem{
		ProductID:  product.ID,
		Name:       product.Name,
		UnitPrice:  product.Price,
		Quantity:   quantity,
		MerchantID: product.MerchantID,
	})
	if err != nil {
		return reply.Reply{}, err
	}

	return reply.Buttons(
		"Added to Cart",
		fmt.Sprintf("✅ %dx %s added!\n\nTotal in cart: %s %.2f", quantity, product.Name, currency, cart.Total),
		[]reply.Button{
			{ID: "cart", Text: "🛒 View Cart"},
			{ID: "menu", Text: "➕ Add More"},
		},
	), nil
}

func removeFromCart(arg string, bctx *dispatch.Context) (reply.Reply, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Usage: !remove <index>, where index comes from !cart.")
	}
	removed, cart, err := bctx.Sessions.RemoveItem(bctx.UserID, index-1)
	if err != nil {
		return reply.Reply{}, err
	}
	return reply.Textf("🗑️ %s removed from cart.\nNew total: %s %.2f", removed.Name, currency, cart.Total), nil
}

func checkout(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	cart := bctx.Sessions.Cart(bctx.UserID)
	if len(cart.Items) == 0 {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Your cart is empty.\nStart shopping with !menu or !search <item>.")
	}

	items := make([]backend.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, backend.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	order, err := bctx.Backend.CreateOrder(ctx, backend.CreateOrderRequest{
		CustomerPhone: bctx.UserID,
		Items:         items,
		Subtotal:      cart.Total,
		Total:         cart.Total,
		Status:        "pending",
		PaymentStatus: "pending",
	})
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "create order", err)
	}

	bctx.Sessions.ClearCart(bctx.UserID)

	return reply.Buttons(
		"Order Placed",
		fmt.Sprintf("✅ *Order Placed!*\n\nOrder #%s\nTotal: %s %.2f\nStatus: Pending confirmation", order.OrderNumber, currency, order.Total),
		[]reply.Button{
			{ID: "track:" + order.ID, Text: "📦 Track Order"},
			{ID: "menu", Text: "🏪 Continue Shopping"},
		},
	), nil
}

func orderHistory(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	orders, err := bctx.Backend.CustomerOrders(ctx, bctx.UserID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load orders", err)
	}
	if len(orders) == 0 {
		return reply.Text("You have no orders yet.\nType !menu to browse and !add to order."), nil
	}
	if len(orders) > 10 {
		orders = orders[:10]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*📦 Your Orders (%d)*\n━━━━━━━━━━━━━━━\n\n", len(orders))
	for i, order := range orders {
		fmt.Fprintf(&b, "%d. Order #%s\n   🏪 %s\n   💰 %s %.2f\n   Status: %s %s\n\n",
			i+1, order.OrderNumber, order.MerchantName, currency, order.Total, statusEmoji(order.Status), order.Status)
	}
	b.WriteString("To track: *!track <order_id>*\nTo reorder: *!reorder <order_id>*")
	return reply.Text(b.String()), nil
}

func trackOrder(ctx context.Context, orderID string, bctx *dispatch.Context) (reply.Reply, error) {
	order, err := bctx.Backend.OrderStatus(ctx, orderID)
	if err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "Order not found. Check the id with !orders.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "track order", err)
	}
	return reply.Textf("*📦 Order #%s*\n\nStatus: %s %s\nTotal: %s %.2f\nPlaced: %s",
		order.OrderNumber, statusEmoji(order.Status), order.Status, currency, order.Total,
		order.CreatedAt.Format("02 Jan 2006 15:04")), nil
}

func reorder(ctx context.Context, orderID string, bctx *dispatch.Context) (reply.Reply, error) {
	order, err := bctx.Backend.OrderStatus(ctx, orderID)
	if err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "Order not found.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "reorder", err)
	}

	var cart session.Cart
	for _, item := range order.Items {
		cart, err = bctx.Sessions.AddItem(bctx.UserID, session.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
		if err != nil {
			return reply.Reply{}, err
		}
	}
	return reply.Textf("✅ Reordered items from Order #%s!\n\n💰 New cart total: %s %.2f\n\nType *!checkout* to place the order.",
		order.OrderNumber, currency, cart.Total), nil
}

func rateOrder(ctx context.Context, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	if len(args) < 2 {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Usage: !rate <order_id> <rating 1-5>")
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Rating must be a number from 1 to 5.")
	}
	if err := bctx.Backend.RateOrder(ctx, args[0], rating); err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "Order not found.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "rate order", err)
	}
	return reply.Textf("⭐ Thanks! You rated Order #%s %d/5.", args[0], rating), nil
}

func profile(bctx *dispatch.Context) reply.Reply {
	role := "Customer"
	switch {
	case bctx.Config.IsOwner(bctx.UserID):
		role = "Owner"
	case bctx.Config.IsAdmin(bctx.UserID):
		role = "Admin"
	case bctx.Config.IsMerchant(bctx.UserID):
		role = "Merchant"
	}
	cart := bctx.Sessions.Cart(bctx.UserID)
	return reply.Textf("*👤 YOUR PROFILE*\n\nPhone: +%s\nRole: %s\nCart items: %d\nCart total: %s %.2f",
		bctx.UserID, role, len(cart.Items), currency, cart.Total)
}

func statusEmoji(status string) string {
	switch strings.ToLower(status) {
	case "pending":
		return "⏳"
	case "accepted", "confirmed":
		return "👍"
	case "preparing":
		return "👨‍🍳"
	case "dispatched", "shipping":
		return "🚚"
	case "delivered", "completed":
		return "✅"
	case "cancelled", "rejected":
		return "❌"
	default:
		return "📦"
	}
}
