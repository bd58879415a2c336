// Package questions clusters chat questions by textual similarity so the
// same question asked many ways surfaces once, with a frequency and asker
// list.
package questions

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/Guneshwar24/youtube-live-chat-insights/internal/domain"
)

const (
	// similarityThreshold is strict: a pair at exactly 0.5 does not merge.
	similarityThreshold = 0.5

	defaultTopLimit = 5

	// FallbackAnswer is attached to a top cluster when the answer
	// collaborator fails.
	FallbackAnswer = "Unable to generate response at this time."
)

// Deduplicator maintains the growing set of question clusters for one
// session. Clusters are never deleted.
type Deduplicator struct {
	clock    clockwork.Clock
	clusters []*domain.QuestionCluster
}

func NewDeduplicator(clock clockwork.Clock) *Deduplicator {
	return &Deduplicator{clock: clock}
}

// Consume submits every message containing a '?' character.
func (d *Deduplicator) Consume(messages []domain.Message) {
	for _, msg := range messages {
		if strings.Contains(msg.Text, "?") {
			d.Submit(msg.Text, msg.Username)
		}
	}
}

// Submit matches the question against existing clusters with a linear scan
// in creation order; the first cluster with Jaccard similarity strictly
// above the threshold absorbs it (frequency incremented, asker appended).
// Otherwise a new cluster is created with this text as representative.
//
// First-match-wins means the grouping of ambiguous questions depends on the
// order clusters were created. That is the defined behavior, not a defect.
func (d *Deduplicator) Submit(text, asker string) *domain.QuestionCluster {
	tokens := tokenize(text)
	for _, cluster := range d.clusters {
		if jaccard(tokens, tokenize(cluster.Question)) > similarityThreshold {
			cluster.Frequency++
			cluster.Askers = append(cluster.Askers, asker)
			return cluster
		}
	}

	cluster := &domain.QuestionCluster{
		Question:  text,
		Frequency: 1,
		Askers:    []string{asker},
		CreatedAt: d.clock.Now(),
	}
	d.clusters = append(d.clusters, cluster)
	return cluster
}

// Size returns the number of clusters.
func (d *Deduplicator) Size() int {
	return len(d.clusters)
}

// TopClusters returns up to limit clusters sorted by frequency descending,
// ties broken by creation order (earlier first). Limit <= 0 uses the
// default of 5.
func (d *Deduplicator) TopClusters(limit int) []domain.QuestionCluster {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	order := make(map[*domain.QuestionCluster]int, len(d.clusters))
	sorted := make([]*domain.QuestionCluster, len(d.clusters))
	for i, c := range d.clusters {
		order[c] = i
		sorted[i] = c
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Frequency != sorted[j].Frequency {
			return sorted[i].Frequency > sorted[j].Frequency
		}
		return order[sorted[i]] < order[sorted[j]]
	})

	if limit > len(sorted) {
		limit = len(sorted)
	}
	out := make([]domain.QuestionCluster, limit)
	for i, c := range sorted[:limit] {
		out[i] = *c
	}
	return out
}

// TopClustersWithAnswers returns the top clusters annotated with a suggested
// answer from the collaborator. A failed call leaves the fixed fallback
// string on that cluster; no error propagates.
func (d *Deduplicator) TopClustersWithAnswers(ctx context.Context, limit int, answerer domain.Answerer) []domain.QuestionCluster {
	top := d.TopClusters(limit)
	for i := range top {
		answer, err := answerer.AnswerQuestion(ctx, top[i].Question)
		if err != nil {
			slog.WarnContext(ctx, "Answer generation failed", "question", top[i].Question, "error", err)
			answer = FallbackAnswer
		}
		top[i].SuggestedAnswer = answer
	}
	return top
}
