package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
)

var allowedOrderStatuses = map[string]bool{
	"preparing":  true,
	"ready":      true,
	"dispatched": true,
	"delivered":  true,
	"completed":  true,
}

// Merchant serves the merchant category. Dispatch has already
// verified the caller holds the merchant role.
func Merchant(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	switch d.Canonical {
	case "merchant":
		r, _ := bctx.Registry.CategoryMenu(command.CategoryMerchant)
		return r, nil
	case "dashboard":
		return merchantDashboard(ctx, bctx)
	case "inventory":
		return merchantInventory(ctx, bctx)
	case "analytics":
		return merchantAnalytics(ctx, bctx)
	case "merchantorders":
		return merchantOrders(ctx, bctx)
	case "accept":
		return setOrderStatus(ctx, args[0], "accepted", "", bctx)
	case "reject":
		if len(args) < 2 {
			return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Usage: !reject <order_id> <reason>")
		}
		return setOrderStatus(ctx, args[0], "rejected", strings.Join(args[1:], " "), bctx)
	case "updatestatus":
		if len(args) < 2 {
			return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Usage: !updatestatus <order_id> <status>")
		}
		status := strings.ToLower(args[1])
		if !allowedOrderStatuses[status] {
			return reply.Reply{}, boterr.Newf(boterr.InvalidArgument, "Unknown status %q.\nValid: preparing, ready, dispatched, delivered, completed", args[1])
		}
		return setOrderStatus(ctx, args[0], status, "", bctx)
	case "storehours":
		if len(args) < 2 {
			return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Usage: !storehours <open> <close>, e.g. !storehours 08:00 18:00")
		}
		return reply.Textf("🕐 Store hours set: %s - %s", args[0], args[1]), nil
	case "boost":
		return reply.Textf("🚀 *BOOST REQUESTED*\n\nDuration: %s\nOur team will contact you to confirm payment and activate the boost.", args[0]), nil
	case "tips":
		return merchantTips(), nil
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "merchant: unrouted command %q", d.Canonical)
	}
}

func merchantDashboard(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	m, err := bctx.Backend.MerchantProfile(ctx, bctx.UserID)
	if err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "No merchant profile found for your number.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load merchant profile", err)
	}
	sales, err := bctx.Backend.Sales(ctx, bctx.UserID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load sales", err)
	}
	state := "🔴 Closed"
	if m.Open {
		state = "🟢 Open"
	}
	return reply.Buttons(
		"Dashboard",
		fmt.Sprintf("*💼 %s*\n━━━━━━━━━━━━━\n\n%s • ⭐ %.1f\n\n📦 Orders (%s): %d\n💰 Revenue: %s %.2f",
			m.BusinessName, state, m.Rating, sales.Period, sales.Orders, currency, sales.Revenue),
		[]reply.Button{
			{ID: "merchantorders", Text: "📦 Orders"},
			{ID: "analytics", Text: "📊 Analytics"},
			{ID: "inventory", Text: "📋 Inventory"},
		},
	), nil
}

func merchantInventory(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	products, err := bctx.Backend.SearchProducts(ctx, bctx.UserID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load inventory", err)
	}
	if len(products) == 0 {
		return reply.Text("📋 Your inventory is empty.\nAdd products from the merchant portal."), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*📋 INVENTORY (%d items)*\n━━━━━━━━━━━━━\n\n", len(products))
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s — %s %.2f\n", i+1, p.Name, currency, p.Price)
	}
	return reply.Text(b.String()), nil
}

func merchantAnalytics(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	sales, err := bctx.Backend.Sales(ctx, bctx.UserID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load analytics", err)
	}
	avg := 0.0
	if sales.Orders > 0 {
		avg = sales.Revenue / float64(sales.Orders)
	}
	return reply.Textf("*📊 SALES ANALYTICS*\n━━━━━━━━━━━━━\n\nPeriod: %s\n📦 Orders: %d\n💰 Revenue: %s %.2f\n📈 Avg order: %s %.2f",
		sales.Period, sales.Orders, currency, sales.Revenue, currency, avg), nil
}

func merchantOrders(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	orders, err := bctx.Backend.MerchantOrders(ctx, bctx.UserID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load merchant orders", err)
	}
	if len(orders) == 0 {
		return reply.Text("📦 No incoming orders right now."), nil
	}
	if len(orders) > 10 {
		orders = orders[:10]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*📦 INCOMING ORDERS (%d)*\n━━━━━━━━━━━━━\n\n", len(orders))
	for i, order := range orders {
		fmt.Fprintf(&b, "%d. #%s — %s %.2f — %s %s\n", i+1, order.OrderNumber, currency, order.Total, statusEmoji(order.Status), order.Status)
	}
	b.WriteString("\n*!accept <order_id>* or *!reject <order_id> <reason>*")
	return reply.Text(b.String()), nil
}

func setOrderStatus(ctx context.Context, orderID, status, reason string, bctx *dispatch.Context) (reply.Reply, error) {
	if err := bctx.Backend.UpdateOrderStatus(ctx, orderID, status, reason); err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "Order not found.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "update order status", err)
	}
	return reply.Textf("%s Order %s is now *%s*.", statusEmoji(status), orderID, status), nil
}

func merchantTips() reply.Reply {
	return reply.Text("*💡 MERCHANT TIPS*\n\n" +
		"1. Respond to orders within 5 minutes — fast stores rank higher.\n" +
		"2. Keep your store hours accurate with !storehours.\n" +
		"3. Quality photos on the portal lift conversion.\n" +
		"4. Use !boost during peak hours for extra reach.\n" +
		"5. Check !analytics weekly to spot your best sellers.")
}
