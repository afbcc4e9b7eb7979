package boterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "missing")))
	assert.Equal(t, Unexpected, KindOf(errors.New("plain")))
	assert.Equal(t, Unexpected, KindOf(nil))

	// Kind survives wrapping with %w.
	wrapped := fmt.Errorf("context: %w", New(OutOfRange, "index 5"))
	assert.Equal(t, OutOfRange, KindOf(wrapped))
}

func TestUserMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "You are not allowed to do that.",
		UserMessage(New(Forbidden, "user 123 lacks admin role")))
	assert.Equal(t, "Something went wrong. Please try again.",
		UserMessage(Newf(Unexpected, "pq: connection refused")))
	assert.Equal(t, "Something went wrong. Please try again.",
		UserMessage(errors.New("raw")))
}

func TestUserMessagePassesThroughSafeKinds(t *testing.T) {
	assert.Equal(t, "Product not found.", UserMessage(New(NotFound, "Product not found.")))
	assert.Equal(t, "Quantity must be at least 1.", UserMessage(New(InvalidQuantity, "Quantity must be at least 1.")))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("io timeout")
	err := Wrap(TransportFailure, "send failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "transport_failure")
}
