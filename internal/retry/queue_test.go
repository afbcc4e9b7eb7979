package retry

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnyamukapa/shopbot/internal/reply"
)

func newTestQueue() *Queue {
	return NewQueue(zerolog.Nop())
}

func TestEnqueueAssignsID(t *testing.T) {
	q := newTestQueue()

	q.Enqueue("263770000001@s.whatsapp.net", reply.Text("hello"))
	require.Equal(t, 1, q.Len())

	q.mu.Lock()
	item := q.items[0]
	q.mu.Unlock()
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, DefaultMaxAttempts, item.MaxAttempts)
	assert.Zero(t, item.Attempts)
}

func TestProcessOnceDeliversAndRemoves(t *testing.T) {
	q := newTestQueue()
	q.Enqueue("dest", reply.Text("hello"))

	var sent []Item
	q.ProcessOnce(func(item Item) error {
		sent = append(sent, item)
		return nil
	})

	require.Len(t, sent, 1)
	assert.Equal(t, "dest", sent[0].Destination)
	assert.Zero(t, q.Len())
}

func TestProcessOnceKeepsFailuresUntilMaxAttempts(t *testing.T) {
	q := newTestQueue()
	q.Enqueue("dest", reply.Text("hello"))

	fail := func(Item) error { return errors.New("socket closed") }

	q.ProcessOnce(fail)
	assert.Equal(t, 1, q.Len(), "one failure should stay queued")
	q.ProcessOnce(fail)
	assert.Equal(t, 1, q.Len(), "two failures should stay queued")
	q.ProcessOnce(fail)
	assert.Zero(t, q.Len(), "third failure is terminal")

	// A dropped item never resurfaces.
	calls := 0
	q.ProcessOnce(func(Item) error { calls++; return nil })
	assert.Zero(t, calls)
}

func TestProcessOnceSecondAttemptSucceeds(t *testing.T) {
	q := newTestQueue()
	q.Enqueue("dest", reply.Text("hello"))

	q.ProcessOnce(func(Item) error { return errors.New("down") })
	require.Equal(t, 1, q.Len())

	q.ProcessOnce(func(item Item) error {
		assert.Equal(t, 1, item.Attempts)
		return nil
	})
	assert.Zero(t, q.Len())
}

func TestProcessOnceMixedOutcomes(t *testing.T) {
	q := newTestQueue()
	q.Enqueue("good", reply.Text("a"))
	q.Enqueue("bad", reply.Text("b"))

	q.ProcessOnce(func(item Item) error {
		if item.Destination == "bad" {
			return errors.New("nope")
		}
		return nil
	})

	require.Equal(t, 1, q.Len())
	q.mu.Lock()
	assert.Equal(t, "bad", q.items[0].Destination)
	q.mu.Unlock()
}
