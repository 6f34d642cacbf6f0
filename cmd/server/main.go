package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/svaldes/structhealth/pkg/api"
	"github.com/svaldes/structhealth/pkg/guard"
	"github.com/svaldes/structhealth/pkg/logging"
	"github.com/svaldes/structhealth/pkg/metrics"
)

func main() {
	port := flag.Int("port", 0, "HTTP server port (default 8080, or set PORT)")
	configPath := flag.String("config", "", "Path to YAML configuration file")
	flag.Parse()

	// Structured logging (Railway best practice)
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := api.LoadConfig(*configPath)
	if err != nil {
		slogger.Error("failed to load configuration", "error", err, "path", *configPath)
		os.Exit(1)
	}

	// Flag takes precedence over config, env fills the gap.
	if *port != 0 {
		cfg.Port = *port
	} else if envPort := os.Getenv("PORT"); envPort != "" {
		if p, err := strconv.Atoi(envPort); err == nil {
			cfg.Port = p
		}
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	slogger.Info("structural health engine starting",
		"port", cfg.Port,
		"wall_clock_budget", time.Duration(cfg.Guard.WallClockBudget).String(),
		"rate_limit_max_calls", cfg.Guard.RateLimitMaxCalls,
	)

	registry := metrics.DefaultRegistry()

	g, err := guard.New(cfg.GuardConfig(),
		guard.WithMetrics(registry),
		guard.WithLogger(logger),
	)
	if err != nil {
		slogger.Error("failed to create guard", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	server := api.NewServer(g, cfg, registry, logger)

	// Handle graceful shutdown (Railway best practice)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slogger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slogger.Error("shutdown error", "error", err)
		}
	}()

	slogger.Info("server starting", "port", cfg.Port)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slogger.Error("server error", "error", err)
		os.Exit(1)
	}
	slogger.Info("server exited")
}
