package domain

import "context"

// Generator is the text-generation collaborator. Each method is an
// independently fallible call; callers supply typed fallbacks and never let
// a failure propagate past the calling component.
type Generator interface {
	SuggestPoll(ctx context.Context, window []Message) (*PollSuggestion, error)
	AnalyzeSentiment(ctx context.Context, window []Message) (*GeneratedSentiment, error)
	GenerateHighlights(ctx context.Context, window []Message) ([]HighlightSuggestion, error)
	AnswerQuestion(ctx context.Context, question string) (string, error)
}

// Answerer is the subset of Generator needed for question answering.
type Answerer interface {
	AnswerQuestion(ctx context.Context, question string) (string, error)
}

// BatchSource is the transport collaborator feeding message batches in.
// Next blocks until a batch is available or ctx is cancelled. Dequeue is
// sequential and exclusive; the core makes no further concurrency assumption.
type BatchSource interface {
	Next(ctx context.Context) ([]InboundMessage, error)
}

// SnapshotPublisher receives each freshly computed snapshot. Implemented by
// the websocket overlay broadcaster; a no-op implementation is fine.
type SnapshotPublisher interface {
	Publish(snapshot *Snapshot)
}
