// Package generate implements the text-generation collaborator against an
// OpenAI-compatible chat-completion endpoint. Every call is independently
// fallible: it carries its own timeout, goes through a shared circuit
// breaker, and returns a plain error the caller degrades on. Nothing here
// ever panics past the call site.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/metrics"
)

const (
	defaultBaseURL = "https://api.studio.nebius.ai/v1/"
	defaultModel   = "meta-llama/Meta-Llama-3.1-70B-Instruct"
	defaultTimeout = 20 * time.Second

	completionTemperature = 0.7
	answerMaxTokens       = 100
)

// Options configures the collaborator client.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client talks to the chat-completion backend. Implements domain.Generator.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

var _ domain.Generator = (*Client)(nil)

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	cfg.BaseURL = opts.BaseURL

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "generator",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "component", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.Set(breakerStateValue(to))
		},
	})

	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   opts.Model,
		timeout: opts.Timeout,
		breaker: breaker,
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// complete runs one chat completion through the breaker with the configured
// timeout. jsonMode requests a JSON object response.
func (c *Client) complete(ctx context.Context, systemPrompt, userContent string, jsonMode bool, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContent},
		},
		Temperature: completionTemperature,
		MaxTokens:   maxTokens,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("chat completion: no choices returned")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// messageWindow renders the recent-message window the prompts consume.
func messageWindow(window []domain.Message) (string, error) {
	type entry struct {
		Username string `json:"username"`
		Message  string `json:"message"`
	}
	entries := make([]entry, len(window))
	for i, m := range window {
		entries[i] = entry{Username: m.Username, Message: m.Text}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode message window: %w", err)
	}
	return string(raw), nil
}

func (c *Client) facetJSON(ctx context.Context, facet, prompt string, window []domain.Message, out any) error {
	content, err := messageWindow(window)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues(facet, "error").Inc()
		return err
	}
	raw, err := c.complete(ctx, prompt, content, true, 0)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues(facet, "error").Inc()
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		metrics.GeneratorCalls.WithLabelValues(facet, "error").Inc()
		return fmt.Errorf("parse %s response: %w", facet, err)
	}
	metrics.GeneratorCalls.WithLabelValues(facet, "ok").Inc()
	return nil
}

// SuggestPoll asks the backend for one poll candidate over the recent window.
func (c *Client) SuggestPoll(ctx context.Context, window []domain.Message) (*domain.PollSuggestion, error) {
	var suggestion domain.PollSuggestion
	if err := c.facetJSON(ctx, "poll", pollPrompt, window, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// AnalyzeSentiment asks the backend for a free-form sentiment analysis.
func (c *Client) AnalyzeSentiment(ctx context.Context, window []domain.Message) (*domain.GeneratedSentiment, error) {
	var sentiment domain.GeneratedSentiment
	if err := c.facetJSON(ctx, "sentiment", sentimentPrompt, window, &sentiment); err != nil {
		return nil, err
	}
	return &sentiment, nil
}

// GenerateHighlights asks the backend for highlight candidates. The backend
// replies with a JSON object; the highlight array may sit at the top level
// or under a "highlights" key.
func (c *Client) GenerateHighlights(ctx context.Context, window []domain.Message) ([]domain.HighlightSuggestion, error) {
	content, err := messageWindow(window)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues("highlights", "error").Inc()
		return nil, err
	}
	raw, err := c.complete(ctx, highlightsPrompt, content, true, 0)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues("highlights", "error").Inc()
		return nil, err
	}

	suggestions, err := parseHighlights(raw)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues("highlights", "error").Inc()
		return nil, err
	}
	metrics.GeneratorCalls.WithLabelValues("highlights", "ok").Inc()
	return suggestions, nil
}

func parseHighlights(raw string) ([]domain.HighlightSuggestion, error) {
	var direct []domain.HighlightSuggestion
	if err := json.Unmarshal([]byte(raw), &direct); err == nil {
		return direct, nil
	}
	var wrapped struct {
		Highlights []domain.HighlightSuggestion `json:"highlights"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("parse highlights response: %w", err)
	}
	return wrapped.Highlights, nil
}

// AnswerQuestion asks the backend for a short moderator-style answer.
func (c *Client) AnswerQuestion(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(answerPromptTemplate, question)
	answer, err := c.complete(ctx, prompt, question, false, answerMaxTokens)
	if err != nil {
		metrics.GeneratorCalls.WithLabelValues("answer", "error").Inc()
		return "", err
	}
	metrics.GeneratorCalls.WithLabelValues("answer", "ok").Inc()
	return answer, nil
}
