package wire

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"

	"github.com/tnyamukapa/shopbot/internal/reply"
	"github.com/tnyamukapa/shopbot/internal/retry"
)

// fakeTransport records every delivery attempt and fails the first
// `failures` of them.
type fakeTransport struct {
	failures int
	attempts []*waE2E.Message
}

func (f *fakeTransport) deliver(_ context.Context, _ types.JID, msg *waE2E.Message) error {
	f.attempts = append(f.attempts, msg)
	if len(f.attempts) <= f.failures {
		return errors.New("stream closed")
	}
	return nil
}

func newTestSender(f *fakeTransport) (*Sender, *retry.Queue) {
	queue := retry.NewQueue(zerolog.Nop())
	return NewSender(f.deliver, queue, zerolog.Nop()), queue
}

func listReply() reply.Reply {
	return reply.List("Menu", "pick one", []reply.Section{
		{Title: "Products", Rows: []reply.Row{
			{ID: "add:p1", Title: "Bread", Description: "ZWL 1.50"},
		}},
	}, "Browse")
}

func TestSendStructuredFirstAttemptSucceeds(t *testing.T) {
	f := &fakeTransport{}
	s, queue := newTestSender(f)

	err := s.Send(context.Background(), types.NewJID("263700000001", types.DefaultUserServer), listReply())
	require.NoError(t, err)
	assert.Len(t, f.attempts, 1)
	assert.Equal(t, 0, queue.Len())
}

func TestSendStructuredDegradesToTextOnce(t *testing.T) {
	f := &fakeTransport{failures: 1}
	s, queue := newTestSender(f)

	err := s.Send(context.Background(), types.NewJID("263700000001", types.DefaultUserServer), listReply())
	require.NoError(t, err)

	require.Len(t, f.attempts, 2)
	assert.NotNil(t, f.attempts[0].GetViewOnceMessage().GetMessage().GetListMessage())
	assert.NotEmpty(t, f.attempts[1].GetConversation(), "second attempt should be plain text")
	assert.Equal(t, 0, queue.Len())
}

func TestSendStructuredFailingTwiceEnqueuesFallback(t *testing.T) {
	f := &fakeTransport{failures: 2}
	s, queue := newTestSender(f)

	err := s.Send(context.Background(), types.NewJID("263700000001", types.DefaultUserServer), listReply())
	require.Error(t, err)

	// Exactly two deliveries: the structured payload and its one text
	// fallback. The failed fallback lands in the retry queue.
	assert.Len(t, f.attempts, 2)
	require.Equal(t, 1, queue.Len())

	var queued []retry.Item
	queue.ProcessOnce(func(item retry.Item) error {
		queued = append(queued, item)
		return nil
	})
	require.Len(t, queued, 1)
	assert.Equal(t, reply.KindText, queued[0].Payload.Kind)
}

func TestSendTextFailureEnqueuesWithoutSecondAttempt(t *testing.T) {
	f := &fakeTransport{failures: 1}
	s, queue := newTestSender(f)

	err := s.Send(context.Background(), types.NewJID("263700000001", types.DefaultUserServer), reply.Text("hello"))
	require.Error(t, err)

	assert.Len(t, f.attempts, 1, "a plain text payload has no fallback to try")
	assert.Equal(t, 1, queue.Len())
}

func TestSendNoneIsSilent(t *testing.T) {
	f := &fakeTransport{}
	s, queue := newTestSender(f)

	err := s.Send(context.Background(), types.NewJID("263700000001", types.DefaultUserServer), reply.None())
	require.NoError(t, err)
	assert.Empty(t, f.attempts)
	assert.Equal(t, 0, queue.Len())
}

func TestRetryDeliversQueuedPayload(t *testing.T) {
	f := &fakeTransport{failures: 1}
	s, queue := newTestSender(f)

	_ = s.Send(context.Background(), types.NewJID("263700000001", types.DefaultUserServer), reply.Text("hello"))
	require.Equal(t, 1, queue.Len())

	queue.ProcessOnce(s.Retry)
	assert.Equal(t, 0, queue.Len())
	require.Len(t, f.attempts, 2)
	assert.Equal(t, "hello", f.attempts[1].GetConversation())
}
