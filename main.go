package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"weatherbot/apis/gemini"
	"weatherbot/apis/geocoding"
	"weatherbot/apis/openai"
	"weatherbot/apis/openweather"
	"weatherbot/bot"
	"weatherbot/cli"
	"weatherbot/config"
	"weatherbot/enricher"
	"weatherbot/manager"
	"weatherbot/observability"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()

	mode := manager.ModePostalCode
	if cfg.Mode == config.ModeCity {
		mode = manager.ModeCity
	}

	weatherManager := manager.New(mode, cfg.Country)
	weatherManager.RegisterAPI(openweather.New(cfg, metrics))
	if mode == manager.ModeCity {
		weatherManager.SetGeocoding(geocoding.New(cfg, metrics))
	}

	var placeEnricher bot.Enricher
	if cfg.Enrichment.Enabled {
		generator, err := newGenerator(ctx, cfg, metrics)
		if err != nil {
			logger.Error("create enrichment client", "provider", cfg.Enrichment.Provider, "error", err)
			os.Exit(1)
		}
		placeEnricher = enricher.New(generator, logger, metrics)
	}

	handler := bot.NewHandler(
		weatherManager,
		placeEnricher,
		bot.MessagesFor(mode, cfg.Enrichment.Enabled),
		cfg.MessageTimeout,
		logger,
		metrics,
	)

	serve := func(ctx context.Context) error {
		if cfg.Telegram.Token == "" {
			return errors.New("TOKEN is required to serve")
		}
		telegram, err := bot.NewTelegram(cfg.Telegram.Token, cfg.Telegram.Username, cfg.Telegram.PollTimeout, handler, logger, metrics)
		if err != nil {
			return err
		}
		srv := observability.NewServer(cfg.HTTP.Addr, telegram, logger)
		return cli.Serve(ctx, telegram, srv, cfg.ShutdownTimeout, logger)
	}

	cmd, err := cli.New(handler, serve)
	if err != nil {
		logger.Error("new cli", "error", err)
		os.Exit(1)
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		logger.Error("exec", "error", err)
		stop()
		os.Exit(1)
	}
}

func newGenerator(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (enricher.Generator, error) {
	if cfg.Enrichment.Provider == config.ProviderOpenAI {
		return openai.New(cfg, metrics)
	}
	return gemini.New(ctx, cfg, metrics)
}
