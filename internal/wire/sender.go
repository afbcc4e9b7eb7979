package wire

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"

	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/reply"
	"github.com/tnyamukapa/shopbot/internal/retry"
)

const sendTimeout = 15 * time.Second

// DeliverFunc pushes one rendered message onto the transport.
type DeliverFunc func(ctx context.Context, to types.JID, msg *waE2E.Message) error

// Sender delivers replies over the live WhatsApp connection. A
// structured payload the transport rejects is re-rendered as plain
// text exactly once; a second failure lands the text in the retry
// queue as a terminal send error.
type Sender struct {
	deliver DeliverFunc
	queue   *retry.Queue
	log     zerolog.Logger
}

func NewSender(deliver DeliverFunc, queue *retry.Queue, log zerolog.Logger) *Sender {
	return &Sender{
		deliver: deliver,
		queue:   queue,
		log:     log.With().Str("component", "sender").Logger(),
	}
}

func (s *Sender) Send(ctx context.Context, to types.JID, r reply.Reply) error {
	if r.Kind == reply.KindNone {
		return nil
	}

	msg, err := Format(r)
	if err != nil {
		return boterr.Wrap(boterr.Unexpected, "format reply", err)
	}
	if msg == nil {
		return nil
	}

	if err := s.send(ctx, to, msg); err == nil {
		return nil
	} else if !Structured(r) {
		s.log.Warn().Str("to", to.String()).Err(err).Msg("text send failed, queueing for retry")
		s.queue.Enqueue(to.String(), Fallback(r))
		return boterr.Wrap(boterr.TransportFailure, "send failed", err)
	} else {
		s.log.Warn().Str("to", to.String()).Str("kind", string(r.Kind)).Err(err).
			Msg("structured send rejected, falling back to plain text")
	}

	fallback := Fallback(r)
	msg, err = Format(fallback)
	if err != nil {
		return boterr.Wrap(boterr.Unexpected, "format fallback", err)
	}
	if err := s.send(ctx, to, msg); err != nil {
		s.queue.Enqueue(to.String(), fallback)
		return boterr.Wrap(boterr.TransportFailure, "fallback send failed", err)
	}
	return nil
}

// SendText is the convenience used by webhooks and retries.
func (s *Sender) SendText(ctx context.Context, phone, body string) error {
	return s.Send(ctx, types.NewJID(phone, types.DefaultUserServer), reply.Text(body))
}

// Retry attempts one queued item again, always as plain text.
func (s *Sender) Retry(item retry.Item) error {
	to, err := types.ParseJID(item.Destination)
	if err != nil {
		return err
	}
	msg, err := Format(item.Payload)
	if err != nil || msg == nil {
		return err
	}
	return s.send(context.Background(), to, msg)
}

func (s *Sender) send(ctx context.Context, to types.JID, msg *waE2E.Message) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return s.deliver(ctx, to, msg)
}
