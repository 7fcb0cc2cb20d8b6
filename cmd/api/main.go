// Package main is the entrypoint for the waitlist server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/unbounded/waitlist/internal/config"
	"github.com/unbounded/waitlist/internal/handler"
	"github.com/unbounded/waitlist/internal/metrics"
	"github.com/unbounded/waitlist/internal/notify"
	"github.com/unbounded/waitlist/internal/repository"
	"github.com/unbounded/waitlist/internal/server"
	"github.com/unbounded/waitlist/internal/service"
	"github.com/unbounded/waitlist/internal/store"
	"github.com/unbounded/waitlist/internal/ui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	recorder := metrics.NewInMemory()

	fileStore := store.NewFileStore(store.Options{
		PrimaryDir:  cfg.DataDir,
		FallbackDir: cfg.FallbackDir,
		Filename:    cfg.Filename,
	}, logger, recorder)

	notifier := notify.NewResendNotifier(notify.Config{
		APIKey:   cfg.ResendAPIKey,
		From:     cfg.FromEmail,
		To:       cfg.NotifyEmail,
		Endpoint: cfg.ResendEndpoint,
	}, nil)
	if !notifier.Enabled() {
		logger.Warn("notification credentials missing; signups will be stored without notifying")
	}

	// The mirror stays a nil interface when disabled so the service skips it.
	var mirror service.Mirror
	var db handler.HealthChecker
	var repo *repository.Repository
	if cfg.MirrorEnabled() {
		repo, err = repository.New(ctx, cfg.DatabaseURL, cfg.DatabaseTable)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		mirror = repo
		db = repo
		logger.Info("connected to database", "table", cfg.DatabaseTable)
	}

	tmpl, err := ui.Load()
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	waitlistService := service.NewWaitlistService(fileStore, notifier, mirror, logger, recorder)

	r := setupRouter(handlers{
		base:     handler.New(),
		health:   handler.NewHealthHandler(fileStore, db),
		metrics:  handler.NewMetricsHandler(recorder),
		pages:    handler.NewPageHandler(tmpl, ui.PageData{SiteName: cfg.SiteName, APIBase: cfg.APIBase()}, logger),
		waitlist: handler.NewWaitlistHandler(waitlistService, logger),
	}, cfg, logger)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	if repo != nil {
		srv.OnShutdown("postgres", func(ctx context.Context) error {
			repo.Close()
			return nil
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"data_dirs", fileStore.Dirs(),
		"notifications", notifier.Enabled(),
		"mirror", cfg.MirrorEnabled(),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
