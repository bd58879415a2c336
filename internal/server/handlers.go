package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

func (s *Server) handleInsights(c echo.Context) error {
	snapshot := s.insights.Insights(c.Request().Context())
	return c.JSON(http.StatusOK, snapshot)
}

const defaultTopicLimit = 10

func (s *Server) handleTopics(c echo.Context) error {
	limit := defaultTopicLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	topics := s.insights.TrendingTopics(limit)
	return c.JSON(http.StatusOK, map[string]any{"topics": topics})
}

func (s *Server) handleMessagesByTag(c echo.Context) error {
	tag := c.Param("tag")
	messages := s.insights.MessagesByTag(tag)
	return c.JSON(http.StatusOK, map[string]any{
		"tag":      tag,
		"messages": messages,
	})
}

type voteRequest struct {
	Option   string `json:"option"`
	Username string `json:"username"`
}

func (s *Server) handleVote(c echo.Context) error {
	pollID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid poll id"})
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Option == "" || req.Username == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "option and username are required"})
	}

	poll, err := s.insights.RecordVote(pollID, req.Option, req.Username)
	switch {
	case errors.Is(err, domain.ErrPollNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "poll not found"})
	case errors.Is(err, domain.ErrAlreadyVoted):
		return c.JSON(http.StatusConflict, map[string]string{"error": "already voted"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to record vote"})
	}

	return c.JSON(http.StatusOK, poll)
}

type ingestRequest struct {
	Messages []domain.InboundMessage `json:"messages"`
}

func (s *Server) handleIngest(c echo.Context) error {
	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "messages must not be empty"})
	}

	s.ingest.Push(req.Messages)
	return c.JSON(http.StatusAccepted, map[string]any{
		"status":   "accepted",
		"messages": len(req.Messages),
	})
}
