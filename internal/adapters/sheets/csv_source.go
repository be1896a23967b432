// Package sheets implements the secondary RowSource port against a
// published-to-web spreadsheet CSV export.
package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/trickcandle/commissionqueue/internal/config"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// rawColumns is the published sheet's column count: the submission fields
// plus the terms-of-service agreement column at index 1, which normalization
// drops.
const rawColumns = 13

const agreementColumn = 1

// CSVSource fetches one published spreadsheet CSV and normalizes its rows.
// Transient fetch failures are retried with exponential backoff; client
// errors from the sheet host are treated as permanent.
type CSVSource struct {
	url       string
	specialty bool
	client    *http.Client
	logger    *zap.Logger

	// newBackOff builds a fresh retry policy per fetch.
	newBackOff func() backoff.BackOff
}

// NewCSVSource creates a CSVSource for one configured sheet.
func NewCSVSource(src config.SheetSource, logger *zap.Logger) *CSVSource {
	return &CSVSource{
		url:       src.URL,
		specialty: src.Specialty,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxElapsedTime = 2 * time.Minute
			return b
		},
	}
}

// FetchRows downloads the CSV export and returns its normalized rows.
func (s *CSVSource) FetchRows(ctx context.Context) ([]*secondary.SubmissionRow, error) {
	body, err := s.download(ctx)
	if err != nil {
		return nil, err
	}
	return s.parse(body)
}

func (s *CSVSource) download(ctx context.Context) ([]byte, error) {
	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(fmt.Errorf("sheet returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("sheet returned status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	notify := func(err error, wait time.Duration) {
		s.logger.Warn("sheet fetch failed, retrying",
			zap.String("url", s.url),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(s.newBackOff(), ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	return body, nil
}

// parse reads the CSV, skips the header, drops the agreement column and maps
// the rest by position. Short rows are logged and skipped rather than
// aborting the batch.
func (s *CSVSource) parse(body []byte) ([]*secondary.SubmissionRow, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]*secondary.SubmissionRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < rawColumns {
			s.logger.Warn("skipping short sheet row",
				zap.Int("row", i+2), zap.Int("fields", len(record)))
			continue
		}
		// After dropping the agreement column the name lands last; the form
		// asks for it at the end.
		fields := append(record[:agreementColumn:agreementColumn], record[agreementColumn+1:]...)
		rows = append(rows, &secondary.SubmissionRow{
			Submission: secondary.Submission{
				Timestamp:       fields[0],
				Email:           fields[1],
				Twitch:          fields[2],
				Twitter:         fields[3],
				Discord:         fields[4],
				ReferenceImages: fields[5],
				Description:     fields[6],
				Expression:      fields[7],
				Notes:           fields[8],
				ArtistChoice:    fields[9],
				IfQueueIsFull:   fields[10],
				Name:            fields[11],
			},
			Specialty: s.specialty,
		})
	}
	return rows, nil
}

// Ensure CSVSource implements the interface
var _ secondary.RowSource = (*CSVSource)(nil)
