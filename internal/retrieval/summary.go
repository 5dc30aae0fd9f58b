package retrieval

import (
	"context"
	"log/slog"

	"github.com/emmanuelgonz/irods-data-downloader/internal/model"
)

// Summary aggregates the per-file outcomes of one run.
type Summary struct {
	Located  int
	Outcomes []model.Outcome
	counts   map[model.Status]int
}

// NewSummary returns an empty Summary for located files.
func NewSummary(located int) *Summary {
	return &Summary{
		Located:  located,
		Outcomes: make([]model.Outcome, 0, located),
		counts:   make(map[model.Status]int),
	}
}

// Add records one outcome.
func (s *Summary) Add(o model.Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.counts[o.Status]++
}

// Count returns how many outcomes have status st.
func (s *Summary) Count(st model.Status) int {
	return s.counts[st]
}

// Failed returns the number of failed files.
func (s *Summary) Failed() int {
	return s.counts[model.StatusFailed]
}

// Log emits the run totals as a single line.
func (s *Summary) Log(ctx context.Context) {
	slog.InfoContext(ctx, "retrieval summary",
		"located", s.Located,
		"processed", len(s.Outcomes),
		"extracted", s.counts[model.StatusExtracted],
		"downloaded", s.counts[model.StatusDownloaded],
		"skipped_deprecated", s.counts[model.StatusSkippedDeprecated],
		"planned", s.counts[model.StatusPlanned],
		"failed", s.counts[model.StatusFailed],
	)
}
