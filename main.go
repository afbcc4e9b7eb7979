package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waCompanionReg"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"

	_ "github.com/joho/godotenv/autoload"
	_ "modernc.org/sqlite"

	"github.com/tnyamukapa/shopbot/internal/activity"
	"github.com/tnyamukapa/shopbot/internal/backend"
	"github.com/tnyamukapa/shopbot/internal/bot"
	"github.com/tnyamukapa/shopbot/internal/command"
	"github.com/tnyamukapa/shopbot/internal/config"
	"github.com/tnyamukapa/shopbot/internal/dispatch"
	"github.com/tnyamukapa/shopbot/internal/handlers"
	"github.com/tnyamukapa/shopbot/internal/ratelimit"
	"github.com/tnyamukapa/shopbot/internal/retry"
	"github.com/tnyamukapa/shopbot/internal/session"
	"github.com/tnyamukapa/shopbot/internal/webhook"
	"github.com/tnyamukapa/shopbot/internal/wire"
)

func main() {
	log := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	client, err := newWhatsappClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("whatsapp client setup failed")
	}

	registry := command.MustRegistry()
	parser := command.NewParser(cfg.Prefixes)
	sessions := session.NewStore(cfg.SessionTTL, cfg.CartTTL)
	limiter := ratelimit.New(ratelimit.Config{
		MessageRate:   cfg.MessageRate,
		MessageBurst:  cfg.MessageBurst,
		CommandLimit:  cfg.CommandLimit,
		CommandWindow: cfg.CommandWindow,
	})
	api := backend.New(cfg.APIBaseURL, cfg.APITimeout, log)
	queue := retry.NewQueue(log)
	sender := wire.NewSender(func(ctx context.Context, to types.JID, msg *waE2E.Message) error {
		_, err := client.SendMessage(ctx, to, msg)
		return err
	}, queue, log)
	activityLog := activity.NewLog(200)

	dispatcher := dispatch.New(registry, log)
	handlers.RegisterAll(dispatcher)

	var openaiClient *openai.Client
	if cfg.OpenAIKey != "" {
		openaiClient = openai.NewClient(cfg.OpenAIKey)
	}

	app := bot.New(bot.Options{
		Client:     client,
		Config:     cfg,
		Parser:     parser,
		Registry:   registry,
		Dispatcher: dispatcher,
		Sessions:   sessions,
		Limiter:    limiter,
		Backend:    api,
		Sender:     sender,
		Activity:   activityLog,
		OpenAI:     openaiClient,
		RetryLen:   queue.Len,
		Log:        log,
	})
	client.AddEventHandler(app.HandleEvent)

	if err := connect(client, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("whatsapp login failed")
	}

	server := webhook.NewServer(sender.SendText, client.IsConnected, log)
	go func() {
		if err := server.Run(cfg.HTTPPort); err != nil {
			log.Fatal().Err(err).Msg("webhook server failed")
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.RetryInterval)
		defer ticker.Stop()
		for range ticker.C {
			queue.ProcessOnce(sender.Retry)
		}
	}()

	log.Info().Str("bot", cfg.BotName).Msg("ready")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
		log.Info().Msg("shutting down")
	case <-app.Restart():
		log.Info().Msg("restart requested, exiting for the supervisor")
	}

	client.Disconnect()
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func newWhatsappClient(cfg config.Config) (*whatsmeow.Client, error) {
	dbLog := waLog.Stdout("Database", "WARN", true)
	container, err := sqlstore.New("sqlite", cfg.DBPath, dbLog)
	if err != nil {
		return nil, err
	}

	osName := "[BOT] " + cfg.BotName
	store.DeviceProps.Os = &osName
	platformType := waCompanionReg.DeviceProps_IE
	store.DeviceProps.PlatformType = &platformType

	deviceStore, err := container.GetFirstDevice()
	if err != nil {
		return nil, err
	}

	clientLog := waLog.Stdout("Client", "WARN", true)
	return whatsmeow.NewClient(deviceStore, clientLog), nil
}

// connect logs in with a pairing code when PAIR_PHONE is set, a
// terminal QR code otherwise.
func connect(client *whatsmeow.Client, cfg config.Config, log zerolog.Logger) error {
	if client.Store.ID != nil {
		return client.Connect()
	}

	if cfg.PairPhone != "" {
		if err := client.Connect(); err != nil {
			return err
		}
		code, err := client.PairPhone(cfg.PairPhone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
		if err != nil {
			return err
		}
		log.Info().Str("code", code).Msg("enter this pairing code on your phone")
		return nil
	}

	qrChan, _ := client.GetQRChannel(context.Background())
	if err := client.Connect(); err != nil {
		return err
	}
	go func() {
		for evt := range qrChan {
			if evt.Event == "code" {
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			} else {
				fmt.Println("Login event:", evt.Event)
			}
		}
	}()
	return nil
}
