package queue

import (
	"context"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

// MemorySource is a channel-backed batch source for single-process mode.
type MemorySource struct {
	batches chan []domain.InboundMessage
}

func NewMemorySource(buffer int) *MemorySource {
	return &MemorySource{batches: make(chan []domain.InboundMessage, buffer)}
}

// Push enqueues a batch. Blocks when the buffer is full.
func (s *MemorySource) Push(batch []domain.InboundMessage) {
	s.batches <- batch
}

// Next returns the next batch, blocking until one is available, the source
// is closed, or ctx is cancelled.
func (s *MemorySource) Next(ctx context.Context) ([]domain.InboundMessage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case batch, ok := <-s.batches:
		if !ok {
			return nil, ErrClosed
		}
		return batch, nil
	}
}

// Close stops the source. Pending batches are still delivered.
func (s *MemorySource) Close() {
	close(s.batches)
}
