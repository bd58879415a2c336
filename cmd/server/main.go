package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/aggregate"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/app"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/ephemeral"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/generate"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/logging"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/platform/config"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/questions"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/queue"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/server"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/signals"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/websocket"
)

const memorySourceBuffer = 64

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server, broadcaster *websocket.OverlayBroadcaster, cancelMonitor context.CancelFunc, closeSource func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		cancelMonitor()
		broadcaster.Stop()
		closeSource()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	generator := generate.NewClient(generate.Options{
		APIKey:  cfg.GeneratorAPIKey,
		BaseURL: cfg.GeneratorBaseURL,
		Model:   cfg.GeneratorModel,
		Timeout: cfg.GeneratorTimeout,
	})

	// Batch transport: Redis list when configured, in-memory channel with an
	// HTTP ingest endpoint otherwise.
	var (
		source      domain.BatchSource
		ingest      *queue.MemorySource
		pinger      *queue.RedisSource
		closeSource func()
	)
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		redisSource, err := queue.NewRedisSource(ctx, cfg.RedisURL, cfg.QueueKey)
		cancel()
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		source = redisSource
		pinger = redisSource
		closeSource = func() {
			if err := redisSource.Close(); err != nil {
				slog.Error("Failed to close Redis source", "error", err)
			}
		}
	} else {
		memorySource := queue.NewMemorySource(memorySourceBuffer)
		source = memorySource
		ingest = memorySource
		closeSource = memorySource.Close
	}

	broadcaster := websocket.NewOverlayBroadcaster(clock)

	extractor := signals.NewExtractor(signals.DefaultConfig())
	session := app.NewSession(app.SessionParams{
		Store:           aggregate.NewStore(extractor, aggregate.DefaultConfig(), clock),
		Questions:       questions.NewDeduplicator(clock),
		Ephemeral:       ephemeral.NewManager(ephemeral.DefaultConfig(), clock),
		Generator:       generator,
		Publisher:       broadcaster,
		RefreshInterval: cfg.RefreshInterval,
		GeneratorWindow: cfg.GeneratorWindow,
		Clock:           clock,
	})

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	monitor := app.NewMonitor(session, source, cfg.RefreshInterval, clock)
	go monitor.Run(monitorCtx)

	// Pass nils explicitly to avoid typed-nil interface values.
	var (
		srvIngest server.BatchIngestor
		srvPinger server.SourcePinger
	)
	if ingest != nil {
		srvIngest = ingest
	}
	if pinger != nil {
		srvPinger = pinger
	}
	srv := server.NewServer(cfg, session, broadcaster, srvIngest, srvPinger, clock)

	done := runGracefulShutdown(srv, broadcaster, cancelMonitor, closeSource)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
