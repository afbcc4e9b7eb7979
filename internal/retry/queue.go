// Package retry holds failed outbound sends for bounded re-delivery.
// The queue is a single shared list guarded by one lock so ProcessOnce
// and Enqueue never interleave destructively.
package retry

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tnyamukapa/shopbot/internal/reply"
)

const DefaultMaxAttempts = 3

type Item struct {
	ID          string
	Destination string
	Payload     reply.Reply
	Attempts    int
	MaxAttempts int
}

// SendFunc attempts one delivery. The queue removes the item on nil
// error.
type SendFunc func(item Item) error

type Queue struct {
	mu    sync.Mutex
	items []Item
	log   zerolog.Logger
}

func NewQueue(log zerolog.Logger) *Queue {
	return &Queue{log: log.With().Str("component", "retry").Logger()}
}

func (q *Queue) Enqueue(destination string, payload reply.Reply) {
	q.mu.Lock()
	defer q.mu.Unlock()
	item := Item{
		ID:          uuid.NewString(),
		Destination: destination,
		Payload:     payload,
		MaxAttempts: DefaultMaxAttempts,
	}
	q.items = append(q.items, item)
	q.log.Info().Str("id", item.ID).Str("destination", destination).Msg("queued failed send for retry")
}

// Len reports how many items are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// ProcessOnce walks the queue a single time. Successful items leave
// the queue; failures gain an attempt; items at MaxAttempts are
// dropped with a terminal log entry and never resurface.
func (q *Queue) ProcessOnce(send SendFunc) {
	q.mu.Lock()
	pending := q.items
	q.items = nil
	q.mu.Unlock()

	var keep []Item
	for _, item := range pending {
		if err := send(item); err != nil {
			item.Attempts++
			if item.Attempts >= item.MaxAttempts {
				q.log.Error().Str("id", item.ID).Str("destination", item.Destination).
					Int("attempts", item.Attempts).Err(err).Msg("dropping message after final retry")
				continue
			}
			q.log.Warn().Str("id", item.ID).Int("attempts", item.Attempts).Err(err).Msg("retry failed")
			keep = append(keep, item)
			continue
		}
		q.log.Info().Str("id", item.ID).Str("destination", item.Destination).Msg("retry delivered")
	}

	if len(keep) > 0 {
		q.mu.Lock()
		// New enqueues during processing land after the survivors.
		q.items = append(keep, q.items...)
		q.mu.Unlock()
	}
}
