package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/platform/config"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/websocket"
)

// insightService is the slice of the session the HTTP surface needs.
type insightService interface {
	Insights(ctx context.Context) *domain.Snapshot
	RecordVote(pollID int, option, user string) (*domain.Poll, error)
	TrendingTopics(limit int) []domain.TrendingTopic
	MessagesByTag(tag string) []domain.Message
}

// BatchIngestor accepts inbound batches in single-process mode. Nil when
// batches arrive through an external queue instead.
type BatchIngestor interface {
	Push(batch []domain.InboundMessage)
}

// SourcePinger reports transport reachability for the readiness probe. Nil
// for the in-memory source, which has nothing to reach.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	insights    insightService
	broadcaster *websocket.OverlayBroadcaster
	ingest      BatchIngestor
	pinger      SourcePinger
	clock       clockwork.Clock
	startTime   time.Time
}

func NewServer(cfg *config.Config, insights insightService, broadcaster *websocket.OverlayBroadcaster, ingest BatchIngestor, pinger SourcePinger, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("Request handled",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	srv := &Server{
		echo:        e,
		config:      cfg,
		insights:    insights,
		broadcaster: broadcaster,
		ingest:      ingest,
		pinger:      pinger,
		clock:       clock,
		startTime:   clock.Now(),
	}
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
