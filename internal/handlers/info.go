package handlers

import (
	"context"
	"time"

	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
)

// Info serves the information category: help, diagnostics, policies.
func Info(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	switch d.Canonical {
	case "help":
		if len(args) > 0 {
			if r, ok := bctx.Registry.HelpFor(args[0]); ok {
				return r, nil
			}
			return reply.Reply{}, boterr.Newf(boterr.NotFound, "No command named %q. Type !help for the full menu.", args[0])
		}
		return bctx.Registry.MainMenu(bctx.Config.BotName), nil
	case "about":
		return reply.Textf("*🤖 %s*\n\nYour marketplace assistant on WhatsApp.\nBrowse, order and track — all in chat.\n\nType !help to get started.", bctx.Config.BotName), nil
	case "ping":
		return reply.Text("🏓 Pong! I'm here."), nil
	case "uptime":
		return reply.Textf("⏱️ Up for %s.", time.Since(bctx.StartedAt).Round(time.Second)), nil
	case "support":
		return supportCard(bctx), nil
	case "terms":
		return reply.Text("*📜 TERMS OF SERVICE*\n\n" +
			"1. Orders are binding once a merchant accepts them.\n" +
			"2. Payment is settled directly with the merchant.\n" +
			"3. Abusive behaviour leads to a block.\n" +
			"4. The platform mediates disputes but does not guarantee refunds."), nil
	case "privacy":
		return reply.Text("*🔒 PRIVACY POLICY*\n\n" +
			"We store your phone number, order history and cart contents.\n" +
			"Carts and chat sessions expire automatically.\n" +
			"We never sell your data or message you outside order updates and announcements."), nil
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "info: unrouted command %q", d.Canonical)
	}
}

func supportCard(bctx *dispatch.Context) reply.Reply {
	phone := bctx.Config.SupportPhone
	if phone == "" {
		return reply.Textf("📧 Reach us at %s", bctx.Config.SupportEmail)
	}
	return reply.ContactCard(reply.Contact{
		Name:         bctx.Config.BotName + " Support",
		Phone:        phone,
		Organization: bctx.Config.BotName,
		Email:        bctx.Config.SupportEmail,
	})
}
