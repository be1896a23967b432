package app

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/trickcandle/commissionqueue/internal/ports/primary"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// IngestService reconciles externally-sourced submission rows against the
// store. Rows whose natural key already exists are skipped; the rest are
// admitted and rendered. Batches are shuffled before processing so a burst
// of new commissions does not bias channel counters toward one artist.
type IngestService struct {
	lifecycle *LifecycleService
	sources   []secondary.RowSource
	logger    *zap.Logger

	// randomize is disabled only in tests that assert processing order.
	randomize bool
}

// NewIngestService creates a new IngestService with injected dependencies.
func NewIngestService(lifecycle *LifecycleService, sources []secondary.RowSource, logger *zap.Logger) *IngestService {
	return &IngestService{
		lifecycle: lifecycle,
		sources:   sources,
		logger:    logger,
		randomize: true,
	}
}

// Sync pulls every configured source, normalizes and deduplicates the rows,
// and admits the new ones. A row that fails to admit or render is logged
// and skipped; it does not abort the run.
func (s *IngestService) Sync(ctx context.Context) (*primary.SyncReport, error) {
	var rows []*secondary.SubmissionRow
	for _, source := range s.sources {
		fetched, err := source.FetchRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch submission rows: %w", err)
		}
		rows = append(rows, fetched...)
	}

	if s.randomize {
		rand.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
	}

	report := &primary.SyncReport{Fetched: len(rows)}
	for _, row := range rows {
		admitted, err := s.lifecycle.Admit(ctx, row)
		if err != nil {
			s.logger.Error("failed to admit submission",
				zap.String("timestamp", row.Timestamp),
				zap.String("email", row.Email),
				zap.Error(err),
			)
			if admitted {
				report.Admitted++
			}
			continue
		}
		if admitted {
			report.Admitted++
		} else {
			report.Skipped++
		}
	}

	s.logger.Info("ingestion sync complete",
		zap.Int("fetched", report.Fetched),
		zap.Int("admitted", report.Admitted),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// Ensure IngestService implements the interface
var _ primary.IngestService = (*IngestService)(nil)
