// Package main is the CLI entry point for the keyword monitor userbot.
// It handles flag parsing, logging setup, and wiring of the store,
// matcher, command interpreter, and Telegram transport.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tahaayman1/Bot-termux/internal/alert"
	"github.com/tahaayman1/Bot-termux/internal/command"
	"github.com/tahaayman1/Bot-termux/internal/config"
	"github.com/tahaayman1/Bot-termux/internal/database"
	"github.com/tahaayman1/Bot-termux/internal/matcher"
	"github.com/tahaayman1/Bot-termux/internal/metrics"
	"github.com/tahaayman1/Bot-termux/internal/monitor"
	"github.com/tahaayman1/Bot-termux/internal/router"
	"github.com/tahaayman1/Bot-termux/internal/transport"
	"github.com/tahaayman1/Bot-termux/internal/transport/telegram"
)

func main() {
	// Credentials usually live in a .env next to the binary; absence is
	// fine when the environment is set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg := &config.Config{}
	flag.IntVar(&cfg.APIID, "api-id", config.GetEnvIntOrDefault("API_ID", 0), "Telegram API id from my.telegram.org")
	flag.StringVar(&cfg.APIHash, "api-hash", config.GetEnvOrDefault("API_HASH", ""), "Telegram API hash from my.telegram.org")
	flag.StringVar(&cfg.Phone, "phone", config.GetEnvOrDefault("PHONE", ""), "Phone number for first login (optional, prompted otherwise)")
	flag.StringVar(&cfg.SessionFile, "session-file", config.GetEnvOrDefault("SESSION_FILE", "userbot_session.json"), "Path to the Telegram session file")
	flag.StringVar(&cfg.DatabaseFile, "database-file", config.GetEnvOrDefault("DB_FILE", "keywords.db"), "Path to the keyword database")
	flag.BoolVar(&cfg.Debug, "debug", config.GetEnvOrDefault("DEBUG_MODE", "0") == "1", "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting keyword monitor",
		"session_file", cfg.SessionFile,
		"database_file", cfg.DatabaseFile,
		"debug", cfg.Debug,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	db, err := database.Open(cfg.DatabaseFile)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.SeedDefaults(ctx); err != nil {
		slog.Error("Failed to seed default keywords", "error", err)
		os.Exit(1)
	}

	state := monitor.NewState()
	if err := loadAlertChannel(ctx, db, state); err != nil {
		slog.Error("Failed to load alert destination", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()
	go collector.Report(ctx, metrics.DefaultReportInterval)

	m := matcher.New()
	interpreter := command.NewInterpreter(db, state, m, collector)

	// The dispatcher and router need the transport, and the transport
	// needs the router's handler; wire through a late-bound variable.
	var client *telegram.Client
	var rt *router.Router

	client = telegram.New(telegram.Options{
		APIID:       cfg.APIID,
		APIHash:     cfg.APIHash,
		Phone:       cfg.Phone,
		SessionFile: cfg.SessionFile,
		OnReady: func(ctx context.Context) error {
			return sendWelcome(ctx, client, db)
		},
	}, func(ctx context.Context, ev transport.Event) {
		rt.HandleEvent(ctx, ev)
	})

	dispatcher := alert.NewDispatcher(client, state, collector)
	rt = router.New(db, state, m, interpreter, dispatcher, client, collector)

	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Telegram client stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Keyword monitor stopped")
}

// loadAlertChannel restores the persisted alert destination, if any.
func loadAlertChannel(ctx context.Context, db *database.DB, state *monitor.State) error {
	value, err := db.GetSetting(ctx, database.LogChannelKey)
	if err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		slog.Warn("Ignoring malformed alert destination setting", "value", value)
		return nil
	}
	state.SetAlertChannel(id)
	slog.Info("Alerts go to configured channel", "chat_id", id)
	return nil
}

// sendWelcome posts the startup banner to Saved Messages, matching the
// behavior operators expect when the bot comes up.
func sendWelcome(ctx context.Context, sender transport.Sender, db *database.DB) error {
	count, err := db.CountKeywords(ctx)
	if err != nil {
		return err
	}
	text := fmt.Sprintf(
		"🤖 **البوت شغال الآن!**\n\n🔑 الكلمات المفتاحية: %d\n\nاكتب `/help` للمساعدة",
		count,
	)
	if err := sender.SendMessage(ctx, transport.Saved(), text); err != nil {
		// The banner is a courtesy; a failed send must not stop startup.
		slog.Warn("Failed to send welcome message", "error", err)
	}
	return nil
}
