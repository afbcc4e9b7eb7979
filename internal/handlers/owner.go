package handlers

import (
	"context"
	"strings"

	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
)

// Owner serves the owner-only runtime controls.
func Owner(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	switch d.Canonical {
	case "owner":
		r, _ := bctx.Registry.CategoryMenu(command.CategoryOwner)
		return r, nil
	case "backup":
		sessions, carts := bctx.Sessions.Counts()
		retrying := 0
		if bctx.RetryLen != nil {
			retrying = bctx.RetryLen()
		}
		return reply.Textf("*💾 RUNTIME SNAPSHOT*\n\n💬 Sessions: %d\n🛒 Carts: %d\n🔁 Retry queue: %d\n📝 Activity entries: %d\n\nDevice credentials persist in the sqlite store.",
			sessions, carts, retrying, bctx.Activity.Len()), nil
	case "restart":
		if bctx.RequestRestart == nil {
			return reply.Reply{}, boterr.New(boterr.Unexpected, "Restart is not available right now.")
		}
		bctx.RequestRestart()
		return reply.Text("♻️ Restarting... back in a moment."), nil
	case "blocklist":
		blocked := bctx.Config.BlockedPhones
		if len(blocked) == 0 {
			return reply.Text("🚫 Block list is empty."), nil
		}
		return reply.Textf("*🚫 BLOCKED USERS (%d)*\n\n+%s", len(blocked), strings.Join(blocked, "\n+")), nil
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "owner: unrouted command %q", d.Canonical)
	}
}
