package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnyamukapa/shopbot/internal/activity"
	"github.com/tnyamukapa/shopbot/internal/backend"
	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/config"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/reply"
	"github.com/tnyamukapa/shopbot/internal/session"
)

// fakeBackend serves canned JSON and counts hits so tests can assert a
// handler never called out.
type fakeBackend struct {
	server *httptest.Server
	hits   atomic.Int64
}

func newFakeBackend(t *testing.T, routes map[string]string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.hits.Add(1)
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func testContext(t *testing.T, fb *fakeBackend) *dispatch.Context {
	t.Helper()
	var api *backend.Client
	if fb != nil {
		api = backend.New(fb.server.URL, time.Second, zerolog.Nop())
	} else {
		// Unroutable on purpose: any call fails loudly.
		api = backend.New("http://127.0.0.1:1", 100*time.Millisecond, zerolog.Nop())
	}
	return &dispatch.Context{
		UserID:    "263770000001",
		Config:    config.Config{BotName: "Test Bot"},
		Registry:  command.MustRegistry(),
		Sessions:  session.NewStore(time.Hour, time.Hour),
		Backend:   api,
		Activity:  activity.NewLog(10),
		StartedAt: time.Now(),
	}
}

func descriptor(t *testing.T, bctx *dispatch.Context, token string) *command.Descriptor {
	t.Helper()
	d, ok := bctx.Registry.Resolve(token)
	require.True(t, ok, "command %q not in catalog", token)
	return d
}

const productJSON = `{"data":{"id":"p1","name":"Bread","price":1.5,"rating":4.5,"merchant_id":"m1","merchant_name":"Bakery"}}`

func TestCheckoutEmptyCartNeverCallsBackend(t *testing.T) {
	fb := newFakeBackend(t, nil)
	bctx := testContext(t, fb)

	_, err := Customer(context.Background(), descriptor(t, bctx, "checkout"), nil, bctx)
	require.Error(t, err)
	assert.Equal(t, boterr.InvalidArgument, boterr.KindOf(err))
	assert.Zero(t, fb.hits.Load(), "empty-cart checkout must not reach the backend")
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	fb := newFakeBackend(t, map[string]string{
		"/api/orders": `{"data":{"id":"o1","order_number":"1042","status":"pending","total":3.0}}`,
	})
	bctx := testContext(t, fb)
	_, err := bctx.Sessions.AddItem(bctx.UserID, session.CartItem{ProductID: "p1", Name: "Bread", UnitPrice: 1.5, Quantity: 2})
	require.NoError(t, err)

	resp, err := Customer(context.Background(), descriptor(t, bctx, "checkout"), nil, bctx)
	require.NoError(t, err)
	assert.Equal(t, reply.KindButtons, resp.Kind)
	assert.Contains(t, resp.Body, "#1042")
	assert.Empty(t, bctx.Sessions.Cart(bctx.UserID).Items, "checkout must clear the cart")
}

func TestAddLooksUpProductAndMerges(t *testing.T) {
	fb := newFakeBackend(t, map[string]string{"/api/products/p1": productJSON})
	bctx := testContext(t, fb)

	resp, err := Customer(context.Background(), descriptor(t, bctx, "add"), []string{"p1", "2"}, bctx)
	require.NoError(t, err)
	assert.Equal(t, reply.KindButtons, resp.Kind)

	_, err = Customer(context.Background(), descriptor(t, bctx, "add"), []string{"p1", "3"}, bctx)
	require.NoError(t, err)

	cart := bctx.Sessions.Cart(bctx.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.InDelta(t, 7.5, cart.Total, 0.001)
}

func TestAddDefaultsToOneUnit(t *testing.T) {
	fb := newFakeBackend(t, map[string]string{"/api/products/p1": productJSON})
	bctx := testContext(t, fb)

	_, err := Customer(context.Background(), descriptor(t, bctx, "add"), []string{"p1"}, bctx)
	require.NoError(t, err)

	cart := bctx.Sessions.Cart(bctx.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddRejectsBadQuantity(t *testing.T) {
	fb := newFakeBackend(t, map[string]string{"/api/products/p1": productJSON})
	bctx := testContext(t, fb)

	for _, qty := range []string{"0", "-2", "two"} {
		_, err := Customer(context.Background(), descriptor(t, bctx, "add"), []string{"p1", qty}, bctx)
		require.Error(t, err, "quantity %q", qty)
		assert.Equal(t, boterr.InvalidQuantity, boterr.KindOf(err))
	}
	assert.Empty(t, bctx.Sessions.Cart(bctx.UserID).Items)
}

func TestAddUnknownProduct(t *testing.T) {
	fb := newFakeBackend(t, nil)
	bctx := testContext(t, fb)

	_, err := Customer(context.Background(), descriptor(t, bctx, "add"), []string{"ghost", "1"}, bctx)
	require.Error(t, err)
	assert.Equal(t, boterr.NotFound, boterr.KindOf(err))
}

func TestRemoveUsesOneBasedIndex(t *testing.T) {
	bctx := testContext(t, nil)
	_, err := bctx.Sessions.AddItem(bctx.UserID, session.CartItem{ProductID: "p1", Name: "Bread", UnitPrice: 1.0, Quantity: 1})
	require.NoError(t, err)
	_, err = bctx.Sessions.AddItem(bctx.UserID, session.CartItem{ProductID: "p2", Name: "Milk", UnitPrice: 2.0, Quantity: 1})
	require.NoError(t, err)

	resp, err := Customer(context.Background(), descriptor(t, bctx, "remove"), []string{"1"}, bctx)
	require.NoError(t, err)
	assert.Contains(t, resp.Body, "Bread")

	cart := bctx.Sessions.Cart(bctx.UserID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestRemoveOutOfRange(t *testing.T) {
	bctx := testContext(t, nil)
	_, err := bctx.Sessions.AddItem(bctx.UserID, session.CartItem{ProductID: "p1", UnitPrice: 1.0, Quantity: 1})
	require.NoError(t, err)

	_, err = Customer(context.Background(), descriptor(t, bctx, "remove"), []string{"5"}, bctx)
	require.Error(t, err)
	assert.Equal(t, boterr.OutOfRange, boterr.KindOf(err))
}

func TestSearchRejectsShortQuery(t *testing.T) {
	fb := newFakeBackend(t, nil)
	bctx := testContext(t, fb)

	_, err := Customer(context.Background(), descriptor(t, bctx, "search"), []string{"a"}, bctx)
	require.Error(t, err)
	assert.Equal(t, boterr.InvalidArgument, boterr.KindOf(err))
	assert.Zero(t, fb.hits.Load())
}

func TestMenuBuildsProductRows(t *testing.T) {
	fb := newFakeBackend(t, map[string]string{
		"/api/products": `{"data":[
			{"id":"p1","name":"Bread","price":1.5,"rating":4.5,"merchant_name":"Bakery"},
			{"id":"p2","name":"Milk","price":2.25,"rating":4.8,"merchant_name":"Dairy"}]}`,
	})
	bctx := testContext(t, fb)

	resp, err := Customer(context.Background(), descriptor(t, bctx, "menu"), nil, bctx)
	require.NoError(t, err)
	assert.Equal(t, reply.KindList, resp.Kind)
	require.Len(t, resp.Sections, 1)
	require.Len(t, resp.Sections[0].Rows, 2)
	assert.Equal(t, "add:p1", resp.Sections[0].Rows[0].ID)
	assert.Contains(t, resp.Sections[0].Rows[0].Description, "1.50")
}

func TestMenuEmptyCatalog(t *testing.T) {
	fb := newFakeBackend(t, map[string]string{"/api/products": `{"data":[]}`})
	bctx := testContext(t, fb)

	_, err := Customer(context.Background(), descriptor(t, bctx, "menu"), nil, bctx)
	require.Error(t, err)
	assert.Equal(t, boterr.NotFound, boterr.KindOf(err))
}

func TestCartViewOffersCheckout(t *testing.T) {
	bctx := testContext(t, nil)
	_, err := bctx.Sessions.AddItem(bctx.UserID, session.CartItem{ProductID: "p1", Name: "Bread", UnitPrice: 1.5, Quantity: 2})
	require.NoError(t, err)

	resp, err := Customer(context.Background(), descriptor(t, bctx, "cart"), nil, bctx)
	require.NoError(t, err)
	assert.Equal(t, reply.KindButtons, resp.Kind)
	assert.Contains(t, resp.Body, "3.00")
	require.NotEmpty(t, resp.Buttons)
	assert.Equal(t, "checkout", resp.Buttons[0].ID)
}

func TestCartViewEmpty(t *testing.T) {
	bctx := testContext(t, nil)

	_, err := Customer(context.Background(), descriptor(t, bctx, "cart"), nil, bctx)
	require.Error(t, err)
	assert.Equal(t, boterr.NotFound, boterr.KindOf(err))
}
