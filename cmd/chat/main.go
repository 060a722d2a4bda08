// Package main is the entry point for the hpn-chat CLI.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hpn/hpn-chat/internal/adapter"
	"github.com/hpn/hpn-chat/internal/chat"
	"github.com/hpn/hpn-chat/internal/config"
	"github.com/hpn/hpn-chat/internal/security"
	"github.com/hpn/hpn-chat/internal/ui"
)

func main() {
	// =========================================================================
	// 1. Load configuration (Singleton)
	// =========================================================================
	cfg, err := config.GetConfig()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// =========================================================================
	// 2. Setup structured logger behind the redacting handler
	// =========================================================================
	logger := setupLogger(cfg.Logging)

	logger.Info("starting hpn-chat",
		slog.String("provider", string(cfg.Provider)),
		slog.String("log_level", cfg.Logging.Level),
	)

	// =========================================================================
	// 3. Build the provider adapter from validated credentials
	// =========================================================================
	provider, err := adapter.New(cfg.Provider, cfg.Credentials)
	if err != nil {
		logger.Error("failed to build provider adapter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// =========================================================================
	// 4. Console + session + loop
	// =========================================================================
	ui.PrintBanner()

	console := ui.NewConsole()
	console.SessionInfo(provider.Name(), string(provider.HistoryMode()), ui.MaskKey(cfg.Credentials.APIKey))

	session := chat.NewSession(provider, chat.WithLogger(logger))
	loop := chat.NewLoop(session, os.Stdin, console,
		chat.WithTerminationPhrases(cfg.Chat.TerminationPhrases),
	)

	// =========================================================================
	// 5. Run until termination phrase, EOF, or SIGINT
	// =========================================================================
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loop.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			console.Goodbye()
			logger.Info("session interrupted")
			return
		}
		logger.Error("session ended with error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("session ended",
		slog.Int("messages", len(session.History())),
	)
}

// setupLogger creates a structured logger based on config, wrapped in the
// redacting handler so credentials never reach the log output.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if cfg.Format == "text" {
		inner = slog.NewTextHandler(os.Stderr, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stderr, opts)
	}

	logger := slog.New(security.NewRedactedHandler(inner))
	slog.SetDefault(logger)

	return logger
}
