// Package bot is the glue between the WhatsApp socket and the command
// machinery: it reads inbound events, extracts text or selections,
// applies the gates (blocked users, rate limits) and feeds dispatch.
package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/tnyamukapa/shopbot/internal/activity"
	"github.com/tnyamukapa/shopbot/internal/backend"
	"github.com/tnyamukapa/shopbot/internal/boterr"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/config"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/handlers"
	"github.com/tnyamukapa/shopbot/internal/ratelimit"
	"github.com/tnyamukapa/shopbot/internal/reply"
	"github.com/tnyamukapa/shopbot/internal/session"
	"github.com/tnyamukapa/shopbot/internal/wire"
)

const handleTimeout = 30 * time.Second

type Bot struct {
	client     *whatsmeow.Client
	cfg        config.Config
	parser     *command.Parser
	registry   *command.Registry
	dispatcher *dispatch.Dispatcher
	sessions   *session.Store
	limiter    *ratelimit.Limiter
	backend    *backend.Client
	sender     *wire.Sender
	activity   *activity.Log
	openai     *openai.Client
	log        zerolog.Logger

	startedAt time.Time
	restart   chan struct{}
	retryLen  func() int
	httpc     *http.Client
}

type Options struct {
	Client     *whatsmeow.Client
	Config     config.Config
	Parser     *command.Parser
	Registry   *command.Registry
	Dispatcher *dispatch.Dispatcher
	Sessions   *session.Store
	Limiter    *ratelimit.Limiter
	Backend    *backend.Client
	Sender     *wire.Sender
	Activity   *activity.Log
	OpenAI     *openai.Client
	RetryLen   func() int
	Log        zerolog.Logger
}

func New(opts Options) *Bot {
	return &Bot{
		client:     opts.Client,
		cfg:        opts.Config,
		parser:     opts.Parser,
		registry:   opts.Registry,
		dispatcher: opts.Dispatcher,
		sessions:   opts.Sessions,
		limiter:    opts.Limiter,
		backend:    opts.Backend,
		sender:     opts.Sender,
		activity:   opts.Activity,
		openai:     opts.OpenAI,
		retryLen:   opts.RetryLen,
		log:        opts.Log.With().Str("component", "bot").Logger(),
		startedAt:  time.Now(),
		restart:    make(chan struct{}, 1),
		httpc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Restart delivers once when an owner asks for a restart.
func (b *Bot) Restart() <-chan struct{} { return b.restart }

func (b *Bot) HandleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		b.handleMessage(v)
	case *events.Connected:
		b.log.Info().Msg("connected to whatsapp")
	case *events.LoggedOut:
		b.log.Warn().Msg("logged out, device credentials invalidated")
		if err := b.client.Store.Delete(); err != nil {
			b.log.Error().Err(err).Msg("deleting device store failed")
		}
	}
}

func (b *Bot) handleMessage(evt *events.Message) {
	if evt.Info.IsFromMe {
		return
	}
	if evt.Info.Chat.Server == types.BroadcastServer {
		return
	}

	userID := evt.Info.Sender.User
	if b.cfg.IsBlocked(userID) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	selection := extractSelection(evt.Message)
	text := extractText(evt.Message)
	if text == "" && selection == "" {
		if am := evt.Message.GetAudioMessage(); am != nil {
			text = b.transcribe(ctx, am, evt.Info.Chat)
		}
	}
	if text == "" && selection == "" {
		return
	}

	if !b.limiter.Allow(userID) {
		b.log.Info().Str("user", userID).Msg("message rate exceeded")
		b.reply(ctx, evt.Info.Chat, reply.Text("🐌 Slow down a little! Try again in a few seconds."))
		return
	}

	_ = b.client.MarkRead([]types.MessageID{evt.Info.ID}, time.Now(), evt.Info.Chat, evt.Info.Sender)
	_ = b.client.SendChatPresence(evt.Info.Chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)

	bctx := b.dispatchContext(evt)

	if selection != "" {
		b.handleSelection(ctx, evt, bctx, selection)
		return
	}

	if b.parser.IsCommand(text) {
		parsed, ok := b.parser.Parse(text)
		if !ok {
			return
		}
		b.runCommand(ctx, evt, bctx, parsed.Command, parsed.Args)
		return
	}

	if r, ok := handlers.CheckGameAnswer(bctx, text); ok {
		b.reply(ctx, evt.Info.Chat, r)
		return
	}

	// Groups stay quiet for plain chatter; intent replies are a DM
	// behavior.
	if evt.Info.IsGroup {
		return
	}
	b.handleIntent(ctx, evt, bctx, text)
}

// runCommand pushes one resolved token through the per-command rate
// gate and dispatch, recording the outcome.
func (b *Bot) runCommand(ctx context.Context, evt *events.Message, bctx *dispatch.Context, token string, args []string) {
	userID := bctx.UserID

	canonical := token
	if desc, ok := b.registry.Resolve(token); ok {
		canonical = desc.Canonical
	}
	if !b.limiter.AllowCommand(userID, canonical) {
		b.activity.Record(userID, canonical, "rate_limited")
		err := boterr.New(boterr.RateLimited, "You're sending that command too often. Give it a minute.")
		b.reply(ctx, evt.Info.Chat, reply.Error(boterr.UserMessage(err)))
		return
	}

	sess := b.sessions.Session(userID)
	sess.CommandCount++
	b.sessions.PutSession(userID, sess)

	resp := b.dispatcher.Dispatch(ctx, token, args, bctx)
	outcome := "ok"
	if resp.Kind == reply.KindError {
		outcome = "error"
	}
	b.activity.Record(userID, canonical, outcome)
	b.reply(ctx, evt.Info.Chat, resp)
}

// handleSelection routes list and button picks. Row IDs are either
// "category:<key>", "<command>:<arg>" or a bare command token.
func (b *Bot) handleSelection(ctx context.Context, evt *events.Message, bctx *dispatch.Context, token string) {
	head, arg, hasArg := strings.Cut(token, ":")

	if hasArg && head == "category" {
		if r, ok := b.registry.CategoryMenu(command.Category(arg)); ok {
			b.reply(ctx, evt.Info.Chat, r)
			return
		}
		b.reply(ctx, evt.Info.Chat, reply.Error("Unknown category."))
		return
	}

	var args []string
	if hasArg {
		args = strings.Fields(strings.ReplaceAll(arg, ":", " "))
	}
	b.runCommand(ctx, evt, bctx, head, args)
}

// handleIntent answers free-form messages. Intents that map cleanly to
// a command borrow its handler; chatter that matches no intent is
// dropped so the bot never spams casual conversation.
func (b *Bot) handleIntent(ctx context.Context, evt *events.Message, bctx *dispatch.Context, text string) {
	intent, ok := b.parser.DetectIntent(text)
	if !ok {
		b.log.Debug().Str("user", bctx.UserID).Msg("no intent matched, ignoring message")
		return
	}

	sess := b.sessions.Session(bctx.UserID)
	sess.LastIntent = intent
	b.sessions.PutSession(bctx.UserID, sess)
	b.log.Debug().Str("user", bctx.UserID).Str("intent", intent).Msg("intent detected")

	switch intent {
	case command.IntentGreet:
		b.reply(ctx, evt.Info.Chat, reply.Textf(
			"👋 Welcome to *%s*!\n\nI can help you browse, order and track purchases right here in chat.\n\nType *!menu* to see products or *!help* for all commands.", b.cfg.BotName))
	case command.IntentBrowse, command.IntentOrder:
		b.runCommand(ctx, evt, bctx, "menu", nil)
	case command.IntentAddToCart:
		b.reply(ctx, evt.Info.Chat, reply.Text("To add something, pick it from *!menu* or use *!add <product_id> <qty>*."))
	case command.IntentRemove:
		b.reply(ctx, evt.Info.Chat, reply.Text("Check your cart with *!cart*, then *!remove <index>* to drop an item."))
	case command.IntentCheckout:
		b.runCommand(ctx, evt, bctx, "checkout", nil)
	case command.IntentTrack:
		b.runCommand(ctx, evt, bctx, "orders", nil)
	case command.IntentHelp:
		b.runCommand(ctx, evt, bctx, "help", nil)
	case command.IntentProfile:
		b.runCommand(ctx, evt, bctx, "profile", nil)
	case command.IntentPromotions:
		b.runCommand(ctx, evt, bctx, "deals", nil)
	case command.IntentAnalytics:
		if b.cfg.IsMerchant(bctx.UserID) {
			b.runCommand(ctx, evt, bctx, "analytics", nil)
			return
		}
		b.reply(ctx, evt.Info.Chat, reply.Text("Analytics are for merchant accounts. Type *!help* for what I can do for you."))
	}
}

func (b *Bot) dispatchContext(evt *events.Message) *dispatch.Context {
	return &dispatch.Context{
		UserID:    evt.Info.Sender.User,
		ChatJID:   evt.Info.Chat.String(),
		IsGroup:   evt.Info.IsGroup,
		Config:    b.cfg,
		Registry:  b.registry,
		Sessions:  b.sessions,
		Backend:   b.backend,
		Groups:    &groupOps{client: b.client},
		HTTP:      b.httpc,
		Activity:  b.activity,
		StartedAt: b.startedAt,
		RetryLen:  b.retryLen,
		Broadcast: b.broadcast,
		RequestRestart: func() {
			select {
			case b.restart <- struct{}{}:
			default:
			}
		},
	}
}

func (b *Bot) reply(ctx context.Context, to types.JID, r reply.Reply) {
	if err := b.sender.Send(ctx, to, r); err != nil {
		b.log.Warn().Str("to", to.String()).Err(err).Msg("reply delivery failed")
	}
}

// broadcast sends body to every contact on record, best effort.
func (b *Bot) broadcast(ctx context.Context, body string) (int, error) {
	contacts, err := b.client.Store.Contacts.GetAllContacts()
	if err != nil {
		return 0, err
	}
	sent := 0
	for jid := range contacts {
		if jid.Server != types.DefaultUserServer {
			continue
		}
		if err := b.sender.SendText(ctx, jid.User, body); err != nil {
			b.log.Warn().Str("to", jid.String()).Err(err).Msg("broadcast send failed")
			continue
		}
		sent++
	}
	return sent, nil
}

// transcribe downloads a voice note and runs it through Whisper so
// spoken orders flow into the same parser as typed ones.
func (b *Bot) transcribe(ctx context.Context, am *waE2E.AudioMessage, chat types.JID) string {
	if b.openai == nil {
		b.reply(ctx, chat, reply.Text("I can't listen to voice notes right now. Could you type that instead?"))
		return ""
	}

	f, err := os.CreateTemp("", "voice-*.ogg")
	if err != nil {
		b.log.Error().Err(err).Msg("temp file for voice note failed")
		return ""
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := b.client.DownloadToFile(am, f); err != nil {
		b.log.Error().Err(err).Msg("voice note download failed")
		return ""
	}

	resp, err := b.openai.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: f.Name(),
	})
	if err != nil {
		b.log.Error().Err(err).Msg("transcription failed")
		b.reply(ctx, chat, reply.Text("I couldn't make out that voice note. Could you type it instead?"))
		return ""
	}
	b.log.Info().Str("text", resp.Text).Msg("voice note transcribed")
	return resp.Text
}

// extractText pulls the typed text out of whichever message shape
// carried it.
func extractText(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if t := msg.GetConversation(); t != "" {
		return t
	}
	if t := msg.GetExtendedTextMessage().GetText(); t != "" {
		return t
	}
	if t := msg.GetImageMessage().GetCaption(); t != "" {
		return t
	}
	if t := msg.GetVideoMessage().GetCaption(); t != "" {
		return t
	}
	return ""
}

// extractSelection pulls the row or button ID from interactive
// responses. Plain text never reaches here.
func extractSelection(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if id := msg.GetListResponseMessage().GetSingleSelectReply().GetSelectedRowID(); id != "" {
		return id
	}
	if id := msg.GetButtonsResponseMessage().GetSelectedButtonID(); id != "" {
		return id
	}
	if params := msg.GetInteractiveResponseMessage().GetNativeFlowResponseMessage().GetParamsJSON(); params != "" {
		var payload struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal([]byte(params), &payload); err == nil {
			return payload.ID
		}
	}
	return ""
}
