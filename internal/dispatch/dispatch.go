// Package dispatch routes resolved commands to their category handler
// behind role gates, and converts typed handler errors into
// user-visible replies. Handlers never touch the socket; they return
// descriptors and stay pure.
package dispatch

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tnyamukapa/shopbot/internal/activity"
	"github.com/tnyamukapa/shopbot/internal/backend"
	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/config"
	"github.com/tnyamukapa/shopbot/internal/reply"
	"github.com/tnyamukapa/shopbot/internal/session"
)

// GroupParticipant is the slice of group state handlers care about.
type GroupParticipant struct {
	Phone   string
	IsAdmin bool
}

type GroupInfo struct {
	Name         string
	Topic        string
	Participants []GroupParticipant
	Created      time.Time
}

// Groups abstracts the transport's group administration so the group
// handler stays testable without a live connection.
type Groups interface {
	Info(ctx context.Context, chatJID string) (*GroupInfo, error)
	Promote(ctx context.Context, chatJID, phone string) error
	Demote(ctx context.Context, chatJID, phone string) error
	Remove(ctx context.Context, chatJID, phone string) error
}

// Context carries the resolved identity and every collaborator a
// handler may read. It replaces the ambient globals of old bots.
type Context struct {
	UserID  string // bare phone number
	ChatJID string
	IsGroup bool

	Config    config.Config
	Registry  *command.Registry
	Sessions  *session.Store
	Backend   *backend.Client
	Groups    Groups
	HTTP      *http.Client
	Activity  *activity.Log
	StartedAt time.Time

	// RetryLen reports the retry queue depth for diagnostics.
	RetryLen func() int
	// Broadcast fans a text message out to every known contact and
	// reports how many sends were attempted.
	Broadcast func(ctx context.Context, body string) (int, error)
	// RequestRestart asks the process supervisor loop to restart.
	RequestRestart func()
}

// Handler is one category's command handler.
type Handler func(ctx context.Context, d *command.Descriptor, args []string, bctx *Context) (reply.Reply, error)

type Dispatcher struct {
	registry *command.Registry
	handlers map[command.Category]Handler
	log      zerolog.Logger
}

func New(registry *command.Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		handlers: make(map[command.Category]Handler),
		log:      log.With().Str("component", "dispatch").Logger(),
	}
}

func (d *Dispatcher) Register(cat command.Category, h Handler) {
	d.handlers[cat] = h
}

// Dispatch resolves token, gates it by role, and runs the category
// handler. Every outcome is a reply; nothing is silently swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, token string, args []string, bctx *Context) reply.Reply {
	desc, ok := d.registry.Resolve(token)
	if !ok {
		return reply.Error("Unknown command: " + token + "\nType !help to see what I can do.")
	}

	if err := d.authorize(desc.Category, bctx); err != nil {
		d.log.Info().Str("user", bctx.UserID).Str("command", desc.Canonical).Msg("command forbidden")
		return reply.Error(boterr.UserMessage(err))
	}

	if desc.RequiresArgs && len(args) == 0 {
		return reply.Error("Missing arguments.\nUsage: " + desc.Usage)
	}

	handler, ok := d.handlers[desc.Category]
	if !ok {
		d.log.Error().Str("category", string(desc.Category)).Msg("no handler registered for category")
		return reply.Error(boterr.UserMessage(boterr.New(boterr.Unexpected, "unhandled category")))
	}

	resp, err := d.run(ctx, handler, desc, args, bctx)
	if err != nil {
		kind := boterr.KindOf(err)
		evt := d.log.Warn()
		if kind == boterr.Unexpected {
			evt = d.log.Error()
		}
		evt.Str("user", bctx.UserID).Str("command", desc.Canonical).
			Str("kind", kind.String()).Err(err).Msg("command failed")
		return reply.Error(boterr.UserMessage(err))
	}
	return resp
}

// run shields dispatch from handler panics; a panic becomes an
// Unexpected error, never a raw trace to the user.
func (d *Dispatcher) run(ctx context.Context, handler Handler, desc *command.Descriptor, args []string, bctx *Context) (resp reply.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("command", desc.Canonical).Msg("handler panicked")
			err = boterr.Newf(boterr.Unexpected, "handler panic: %v", r)
		}
	}()
	return handler(ctx, desc, args, bctx)
}

func (d *Dispatcher) authorize(cat command.Category, bctx *Context) error {
	switch cat {
	case command.CategoryAdmin:
		if !bctx.Config.IsAdmin(bctx.UserID) {
			return boterr.New(boterr.Forbidden, "admin only")
		}
	case command.CategoryMerchant:
		if !bctx.Config.IsMerchant(bctx.UserID) {
			return boterr.New(boterr.Forbidden, "merchant only")
		}
	case command.CategoryOwner:
		if !bctx.Config.IsOwner(bctx.UserID) {
			return boterr.New(boterr.Forbidden, "owner only")
		}
	}
	return nil
}
