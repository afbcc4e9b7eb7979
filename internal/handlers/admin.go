package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
)

// Admin serves platform administration: merchant lifecycle,
// broadcasts, reports and activity logs.
func Admin(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	switch d.Canonical {
	case "admin":
		r, _ := bctx.Registry.CategoryMenu(command.CategoryAdmin)
		return r, nil
	case "merchants":
		return listMerchants(ctx, bctx)
	case "approve":
		return setMerchantStatus(ctx, args[0], "approved", "", bctx)
	case "deny":
		if len(args) < 2 {
			return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Usage: !deny <merchant_id> <reason>")
		}
		return setMerchantStatus(ctx, args[0], "rejected", strings.Join(args[1:], " "), bctx)
	case "suspend":
		if len(args) < 2 {
			return reply.Reply{}, boterr.New(boterr.InvalidArgument, "Usage: !suspend <merchant_id> <reason>")
		}
		return setMerchantStatus(ctx, args[0], "suspended", strings.Join(args[1:], " "), bctx)
	case "broadcast":
		return broadcast(ctx, strings.Join(args, " "), bctx)
	case "sales":
		return platformSales(ctx, bctx)
	case "logs":
		return activityLogs(bctx), nil
	case "adminstats":
		return platformStats(ctx, bctx)
	case "alerts":
		return alerts(bctx), nil
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "admin: unrouted command %q", d.Canonical)
	}
}

func listMerchants(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	merchants, err := bctx.Backend.Merchants(ctx)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load merchants", err)
	}
	if len(merchants) == 0 {
		return reply.Text("No merchants registered yet."), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*🏪 MERCHANTS (%d)*\n━━━━━━━━━━━━━\n\n", len(merchants))
	for i, m := range merchants {
		fmt.Fprintf(&b, "%d. %s\n   id: %s • ⭐ %.1f • %s\n", i+1, m.BusinessName, m.ID, m.Rating, m.Status)
	}
	b.WriteString("\n*!approve <id>* • *!deny <id> <reason>* • *!suspend <id> <reason>*")
	return reply.Text(b.String()), nil
}

func setMerchantStatus(ctx context.Context, merchantID, status, reason string, bctx *dispatch.Context) (reply.Reply, error) {
	if err := bctx.Backend.UpdateMerchantStatus(ctx, merchantID, status, reason); err != nil {
		if boterr.KindOf(err) == boterr.NotFound {
			return reply.Reply{}, boterr.New(boterr.NotFound, "Merchant not found.")
		}
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "update merchant status", err)
	}
	emoji := map[string]string{"approved": "✅", "rejected": "❌", "suspended": "🚫"}[status]
	return reply.Textf("%s Merchant %s is now *%s*.", emoji, merchantID, status), nil
}

func broadcast(ctx context.Context, body string, bctx *dispatch.Context) (reply.Reply, error) {
	if bctx.Broadcast == nil {
		return reply.Reply{}, boterr.New(boterr.Unexpected, "Broadcast is not available right now.")
	}
	sent, err := bctx.Broadcast(ctx, "📢 *ANNOUNCEMENT*\n\n"+body)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.TransportFailure, "broadcast", err)
	}
	return reply.Textf("📢 Broadcast sent to %d contacts.", sent), nil
}

func platformSales(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	sales, err := bctx.Backend.Sales(ctx, "")
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load sales report", err)
	}
	return reply.Textf("*💰 SALES REPORT*\n━━━━━━━━━━━━━\n\nPeriod: %s\n📦 Orders: %d\n💵 Revenue: %s %.2f",
		sales.Period, sales.Orders, currency, sales.Revenue), nil
}

func activityLogs(bctx *dispatch.Context) reply.Reply {
	entries := bctx.Activity.Recent(15)
	if len(entries) == 0 {
		return reply.Text("📋 No recent activity.")
	}
	var b strings.Builder
	b.WriteString("*📋 RECENT ACTIVITY*\n━━━━━━━━━━━━━\n\n")
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return reply.Text(b.String())
}

func platformStats(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	merchants, err := bctx.Backend.Merchants(ctx)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load merchants", err)
	}
	sessions, carts := bctx.Sessions.Counts()
	retrying := 0
	if bctx.RetryLen != nil {
		retrying = bctx.RetryLen()
	}
	return reply.Textf("*📊 PLATFORM STATS*\n━━━━━━━━━━━━━\n\n🏪 Merchants: %d\n💬 Active sessions: %d\n🛒 Open carts: %d\n🔁 Messages retrying: %d\n⏱️ Uptime: %s",
		len(merchants), sessions, carts, retrying, time.Since(bctx.StartedAt).Round(time.Second)), nil
}

func alerts(bctx *dispatch.Context) reply.Reply {
	retrying := 0
	if bctx.RetryLen != nil {
		retrying = bctx.RetryLen()
	}
	if retrying == 0 {
		return reply.Text("🔔 *ALERTS*\n\nAll clear. No pending alerts.")
	}
	return reply.Textf("🔔 *ALERTS*\n\n⚠️ %d outbound messages waiting for retry.", retrying)
}
