package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

func TestMemorySourceDeliversInOrder(t *testing.T) {
	s := NewMemorySource(4)
	s.Push([]domain.InboundMessage{{Username: "a", Text: "one"}})
	s.Push([]domain.InboundMessage{{Username: "b", Text: "two"}})

	first, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", first[0].Text)

	second, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "two", second[0].Text)
}

func TestMemorySourceContextCancel(t *testing.T) {
	s := NewMemorySource(1)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemorySourceClose(t *testing.T) {
	s := NewMemorySource(1)
	s.Push([]domain.InboundMessage{{Username: "a", Text: "last"}})
	s.Close()

	batch, err := s.Next(context.Background())
	require.NoError(t, err)
	assert.Len(t, batch, 1)

	_, err = s.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
