package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Insight API
	s.echo.GET("/api/insights", s.handleInsights)
	s.echo.GET("/api/topics", s.handleTopics)
	s.echo.GET("/api/tags/:tag/messages", s.handleMessagesByTag)
	s.echo.POST("/api/polls/:id/votes", s.handleVote,
		newRateLimiter(s.config.VoteRatePerSecond, s.config.VoteBurst))
	if s.ingest != nil {
		s.echo.POST("/api/messages", s.handleIngest)
	}

	// Overlay WebSocket
	s.echo.GET("/ws/overlay", s.handleWebSocket)
}
