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

// Group serves the group-management category. Every command here
// requires a group chat; moderation additionally requires a group or
// platform admin.
func Group(ctx context.Context, d *command.Descriptor, args []string, bctx *dispatch.Context) (reply.Reply, error) {
	if !bctx.IsGroup {
		return reply.Reply{}, boterr.New(boterr.InvalidArgument, "This command only works inside a group chat.")
	}

	switch d.Canonical {
	case "groupmenu":
		r, _ := bctx.Registry.CategoryMenu(command.CategoryGroup)
		return r, nil
	case "groupinfo":
		return groupInfo(ctx, bctx)
	case "members":
		return groupMembers(ctx, bctx)
	case "groupstats":
		return groupStats(ctx, bctx)
	case "promote":
		return moderate(ctx, bctx, args[0], "promoted to admin", bctx.Groups.Promote)
	case "demote":
		return moderate(ctx, bctx, args[0], "demoted to member", bctx.Groups.Demote)
	case "kick":
		return moderate(ctx, bctx, args[0], "removed from the group", bctx.Groups.Remove)
	case "announce":
		return reply.Textf("📢 *ANNOUNCEMENT*\n━━━━━━━━━━━━━\n\n%s", strings.Join(args, " ")), nil
	default:
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "group: unrouted command %q", d.Canonical)
	}
}

func groupInfo(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	info, err := bctx.Groups.Info(ctx, bctx.ChatJID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load group info", err)
	}
	admins := 0
	for _, p := range info.Participants {
		if p.IsAdmin {
			admins++
		}
	}
	topic := info.Topic
	if topic == "" {
		topic = "(none)"
	}
	return reply.Textf("*👥 %s*\n━━━━━━━━━━━━━\n\n📝 Topic: %s\n👤 Members: %d\n🛡️ Admins: %d\n📅 Created: %s",
		info.Name, topic, len(info.Participants), admins, info.Created.Format("02 Jan 2006")), nil
}

func groupMembers(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	info, err := bctx.Groups.Info(ctx, bctx.ChatJID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load members", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "*👤 MEMBERS (%d)*\n━━━━━━━━━━━━━\n\n", len(info.Participants))
	for i, p := range info.Participants {
		badge := ""
		if p.IsAdmin {
			badge = " 🛡️"
		}
		fmt.Fprintf(&b, "%d. +%s%s\n", i+1, p.Phone, badge)
		if i == 49 {
			fmt.Fprintf(&b, "... and %d more\n", len(info.Participants)-50)
			break
		}
	}
	return reply.Text(b.String()), nil
}

func groupStats(ctx context.Context, bctx *dispatch.Context) (reply.Reply, error) {
	info, err := bctx.Groups.Info(ctx, bctx.ChatJID)
	if err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load group stats", err)
	}
	admins := 0
	for _, p := range info.Participants {
		if p.IsAdmin {
			admins++
		}
	}
	return reply.Textf("*📊 GROUP STATS*\n━━━━━━━━━━━━━\n\n👤 Members: %d\n🛡️ Admins: %d\n👥 Regular: %d",
		len(info.Participants), admins, len(info.Participants)-admins), nil
}

// moderate runs one group-admin action. Only a group admin or a
// platform admin may moderate.
func moderate(ctx context.Context, bctx *dispatch.Context, phone, verb string, action func(ctx context.Context, chatJID, phone string) error) (reply.Reply, error) {
	allowed := bctx.Config.IsAdmin(bctx.UserID)
	if !allowed {
		info, err := bctx.Groups.Info(ctx, bctx.ChatJID)
		if err != nil {
			return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "load group info", err)
		}
		for _, p := range info.Participants {
			if p.Phone == bctx.UserID && p.IsAdmin {
				allowed = true
				break
			}
		}
	}
	if !allowed {
		return reply.Reply{}, boterr.New(boterr.Forbidden, "group admins only")
	}

	phone = strings.TrimPrefix(phone, "+")
	if err := action(ctx, bctx.ChatJID, phone); err != nil {
		return reply.Reply{}, boterr.Wrap(boterr.Unexpected, "group action", err)
	}
	return reply.Textf("✅ +%s %s.", phone, verb), nil
}
