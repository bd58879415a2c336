package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/metrics"
	"github.com/Guneshwar24/youtube-live-chat-insights/internal/platform/correlation"
)

// Monitor is the continuous consumption loop: it pulls batches from the
// transport collaborator, feeds them to the session and sleeps the refresh
// interval between iterations regardless of processing time. One batch is
// fully processed before the next is dequeued.
type Monitor struct {
	session  *Session
	source   domain.BatchSource
	interval time.Duration
	clock    clockwork.Clock
}

func NewMonitor(session *Session, source domain.BatchSource, interval time.Duration, clock clockwork.Clock) *Monitor {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &Monitor{
		session:  session,
		source:   source,
		interval: interval,
		clock:    clock,
	}
}

// Run blocks until ctx is cancelled. A failure on one batch is logged and
// the loop continues with the next; nothing here terminates the loop early.
// Cancellation is observed at the dequeue and sleep boundaries, never by
// interrupting an in-flight batch.
func (m *Monitor) Run(ctx context.Context) {
	slog.Info("Monitor loop started", "session", m.session.ID(), "interval", m.interval)

	for {
		batchCtx := correlation.WithID(ctx, correlation.NewID())

		batch, err := m.source.Next(batchCtx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("Monitor loop stopped", "session", m.session.ID())
				return
			}
			slog.ErrorContext(batchCtx, "Failed to dequeue batch", "error", err)
			metrics.BatchesProcessed.WithLabelValues("error").Inc()
		} else {
			m.session.GetInsights(batchCtx, batch)
			metrics.BatchesProcessed.WithLabelValues("ok").Inc()
			slog.DebugContext(batchCtx, "Batch processed", "messages", len(batch))
		}

		select {
		case <-ctx.Done():
			slog.Info("Monitor loop stopped", "session", m.session.ID())
			return
		case <-m.clock.After(m.interval):
		}
	}
}
