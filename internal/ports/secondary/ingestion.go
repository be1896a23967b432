package secondary

import "context"

// SubmissionRow is one externally-sourced row, already normalized to the
// common shape shared by the standard and specialty batches. The
// agreement column of the raw feed is dropped during normalization.
type SubmissionRow struct {
	Submission
	// Specialty records which batch the row came from.
	Specialty bool
}

// RowSource defines the secondary port for one submission feed. The
// ingestion reconciler pulls all configured sources per sync run.
type RowSource interface {
	// FetchRows pulls and normalizes the feed's current rows.
	FetchRows(ctx context.Context) ([]*SubmissionRow, error)
}
