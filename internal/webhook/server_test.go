package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	phone string
	body  string
}

func newTestServer(sendErr error) (*Server, *[]sentMessage) {
	var sent []sentMessage
	send := func(_ context.Context, phone, body string) error {
		if sendErr != nil {
			return sendErr
		}
		sent = append(sent, sentMessage{phone, body})
		return nil
	}
	s := NewServer(send, func() bool { return true }, zerolog.Nop())
	return s, &sent
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"connected":true`)
}

func TestOrderUpdateNotifiesCustomer(t *testing.T) {
	s, sent := newTestServer(nil)

	w := post(t, s, "/webhook/order-update",
		`{"orderId":"1042","status":"dispatched","customerPhone":"263770000001"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *sent, 1)
	assert.Equal(t, "263770000001", (*sent)[0].phone)
	assert.Contains(t, (*sent)[0].body, "#1042")
	assert.Contains(t, (*sent)[0].body, "dispatched")
}

func TestOrderUpdateRejectsMissingFields(t *testing.T) {
	s, sent := newTestServer(nil)

	for _, body := range []string{
		`{}`,
		`{"orderId":"1042"}`,
		`{"orderId":"1042","status":"dispatched"}`,
		`not json`,
	} {
		w := post(t, s, "/webhook/order-update", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
	assert.Empty(t, *sent)
}

func TestOrderUpdateReportsDeliveryFailure(t *testing.T) {
	s, _ := newTestServer(errors.New("socket closed"))

	w := post(t, s, "/webhook/order-update",
		`{"orderId":"1042","status":"dispatched","customerPhone":"263770000001"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestMerchantApprovedNotifiesMerchant(t *testing.T) {
	s, sent := newTestServer(nil)

	w := post(t, s, "/webhook/merchant-approved",
		`{"merchantPhone":"263770000200","businessName":"Supa Stores"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *sent, 1)
	assert.Equal(t, "263770000200", (*sent)[0].phone)
	assert.Contains(t, (*sent)[0].body, "Supa Stores")
}

func TestAPISend(t *testing.T) {
	s, sent := newTestServer(nil)

	w := post(t, s, "/api/send", `{"phone":"263770000001","message":"hi"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *sent, 1)
	assert.Equal(t, "hi", (*sent)[0].body)
}
