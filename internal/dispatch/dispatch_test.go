package dispatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnyamukapa/shopbot/internal/activity"
	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/config"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
	"github.com/tnyamukapa/shopbot/internal/session"
)

func newTestContext(userID string) *dispatch.Context {
	return &dispatch.Context{
		UserID: userID,
		Config: config.Config{
			AdminPhones:    []string{"263770000100"},
			MerchantPhones: []string{"263770000200"},
			OwnerPhone:     "263770000300",
		},
		Registry:  command.MustRegistry(),
		Sessions:  session.NewStore(time.Hour, time.Hour),
		Activity:  activity.NewLog(10),
		StartedAt: time.Now(),
	}
}

func newTestDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	return dispatch.New(command.MustRegistry(), zerolog.Nop())
}

func TestDispatchUnknownCommand(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Dispatch(context.Background(), "frobnicate", nil, newTestContext("u"))
	assert.Equal(t, reply.KindError, resp.Kind)
	assert.Contains(t, resp.Body, "Unknown command")
	assert.Contains(t, resp.Body, "!help")
}

func TestDispatchRoleGates(t *testing.T) {
	d := newTestDispatcher(t)
	d.Register(command.CategoryAdmin, func(context.Context, *command.Descriptor, []string, *dispatch.Context) (reply.Reply, error) {
		return reply.Text("admin ok"), nil
	})
	d.Register(command.CategoryMerchant, func(context.Context, *command.Descriptor, []string, *dispatch.Context) (reply.Reply, error) {
		return reply.Text("merchant ok"), nil
	})
	d.Register(command.CategoryOwner, func(context.Context, *command.Descriptor, []string, *dispatch.Context) (reply.Reply, error) {
		return reply.Text("owner ok"), nil
	})

	// A plain customer is turned away from every gated category.
	customer := newTestContext("263770000999")
	for _, token := range []string{"admin", "dashboard", "owner"} {
		resp := d.Dispatch(context.Background(), token, nil, customer)
		assert.Equal(t, reply.KindError, resp.Kind, "token %s", token)
		assert.Equal(t, "You are not allowed to do that.", resp.Body)
	}

	admin := newTestContext("263770000100")
	assert.Equal(t, "admin ok", d.Dispatch(context.Background(), "admin", nil, admin).Body)

	merchant := newTestContext("263770000200")
	assert.Equal(t, "merchant ok", d.Dispatch(context.Background(), "dashboard", nil, merchant).Body)

	// The owner passes admin gates too, but not merchant ones.
	owner := newTestContext("263770000300")
	assert.Equal(t, "admin ok", d.Dispatch(context.Background(), "admin", nil, owner).Body)
	assert.Equal(t, "owner ok", d.Dispatch(context.Background(), "owner", nil, owner).Body)
	resp := d.Dispatch(context.Background(), "dashboard", nil, owner)
	assert.Equal(t, reply.KindError, resp.Kind)
}

func TestDispatchRequiresArgs(t *testing.T) {
	d := newTestDispatcher(t)
	called := false
	d.Register(command.CategoryShopping, func(context.Context, *command.Descriptor, []string, *dispatch.Context) (reply.Reply, error) {
		called = true
		return reply.Text("ok"), nil
	})

	resp := d.Dispatch(context.Background(), "search", nil, newTestContext("u"))
	assert.Equal(t, reply.KindError, resp.Kind)
	assert.Contains(t, resp.Body, "!search <query>")
	assert.False(t, called, "handler must not run without required args")

	resp = d.Dispatch(context.Background(), "search", []string{"bread"}, newTestContext("u"))
	assert.Equal(t, "ok", resp.Body)
}

func TestDispatchResolvesAliases(t *testing.T) {
	d := newTestDispatcher(t)
	var got string
	d.Register(command.CategoryShopping, func(_ context.Context, desc *command.Descriptor, _ []string, _ *dispatch.Context) (reply.Reply, error) {
		got = desc.Canonical
		return reply.Text("ok"), nil
	})

	d.Dispatch(context.Background(), "m", nil, newTestContext("u"))
	assert.Equal(t, "menu", got)
}

func TestDispatchTranslatesHandlerErrors(t *testing.T) {
	d := newTestDispatcher(t)
	d.Register(command.CategoryShopping, func(context.Context, *command.Descriptor, []string, *dispatch.Context) (reply.Reply, error) {
		return reply.Reply{}, boterr.New(boterr.NotFound, "No products available.")
	})

	resp := d.Dispatch(context.Background(), "menu", nil, newTestContext("u"))
	assert.Equal(t, reply.KindError, resp.Kind)
	assert.Equal(t, "No products available.", resp.Body)
}

func TestDispatchHidesUnexpectedDetail(t *testing.T) {
	d := newTestDispatcher(t)
	d.Register(command.CategoryShopping, func(context.Context, *command.Descriptor, []string, *dispatch.Context) (reply.Reply, error) {
		return reply.Reply{}, boterr.Newf(boterr.Unexpected, "db connection refused at 10.0.0.3")
	})

	resp := d.Dispatch(context.Background(), "menu", nil, newTestContext("u"))
	require.Equal(t, reply.KindError, resp.Kind)
	assert.Equal(t, "Something went wrong. Please try again.", resp.Body)
	assert.NotContains(t, resp.Body, "10.0.0.3")
}

func TestDispatchRecoversPanics(t *testing.T) {
	d := newTestDispatcher(t)
	d.Register(command.CategoryShopping, func(context.Context, *command.Descriptor, []string, *dispatch.Context) (reply.Reply, error) {
		panic("boom")
	})

	resp := d.Dispatch(context.Background(), "menu", nil, newTestContext("u"))
	assert.Equal(t, reply.KindError, resp.Kind)
	assert.Equal(t, "Something went wrong. Please try again.", resp.Body)
}
