// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// commissionColumns is the canonical column list; every SELECT and
// RETURNING clause uses it so scanCommission stays the single scan path.
const commissionColumns = "id, timestamp, email, name, twitch, twitter, discord, " +
	"reference_images, description, expression, notes, artist_choice, if_queue_is_full, " +
	"assigned_to, allow_any_artist, specialty, accepted, hidden, invoiced, paid, finished, " +
	"channel_name, message_id, counter"

// CommissionRepository implements secondary.CommissionRepository with SQLite.
// Every mutator is one UPDATE ... RETURNING statement, so each call is atomic
// on the database's own transaction boundary.
type CommissionRepository struct {
	db *sql.DB
}

// NewCommissionRepository creates a new SQLite commission repository.
func NewCommissionRepository(db *sql.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCommission(row rowScanner) (*secondary.CommissionRecord, error) {
	var (
		record      secondary.CommissionRecord
		assignedTo  sql.NullString
		channelName sql.NullString
		messageID   sql.NullString
	)

	err := row.Scan(
		&record.ID, &record.Timestamp, &record.Email, &record.Name,
		&record.Twitch, &record.Twitter, &record.Discord,
		&record.ReferenceImages, &record.Description, &record.Expression,
		&record.Notes, &record.ArtistChoice, &record.IfQueueIsFull,
		&assignedTo, &record.AllowAnyArtist, &record.Specialty,
		&record.Accepted, &record.Hidden, &record.Invoiced, &record.Paid,
		&record.Finished, &channelName, &messageID, &record.Counter,
	)
	if err != nil {
		return nil, err
	}

	record.AssignedTo = assignedTo.String
	record.ChannelName = channelName.String
	record.MessageID = messageID.String
	return &record, nil
}

// Insert persists a new commission. The commissions table carries
// UNIQUE (timestamp, email) ON CONFLICT IGNORE, so a duplicate insert
// returns no row; the existing row is fetched and returned instead.
func (r *CommissionRepository) Insert(ctx context.Context, sub *secondary.Submission) (*secondary.CommissionRecord, error) {
	record, err := scanCommission(r.db.QueryRowContext(ctx,
		`INSERT INTO commissions (timestamp, email, name, twitch, twitter, discord,
			reference_images, description, expression, notes, artist_choice, if_queue_is_full)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+commissionColumns,
		sub.Timestamp, sub.Email, sub.Name, sub.Twitch, sub.Twitter, sub.Discord,
		sub.ReferenceImages, sub.Description, sub.Expression, sub.Notes,
		sub.ArtistChoice, sub.IfQueueIsFull,
	))
	if err == sql.ErrNoRows {
		return r.GetByNaturalKey(ctx, sub.Timestamp, sub.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert commission: %w", err)
	}
	return record, nil
}

// GetByNaturalKey retrieves a commission by its (timestamp, email) key.
func (r *CommissionRepository) GetByNaturalKey(ctx context.Context, timestamp, email string) (*secondary.CommissionRecord, error) {
	record, err := scanCommission(r.db.QueryRowContext(ctx,
		"SELECT "+commissionColumns+" FROM commissions WHERE timestamp = ? AND email = ?",
		timestamp, email,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("commission (%s, %s): %w", timestamp, email, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission by natural key: %w", err)
	}
	return record, nil
}

// GetByMessageID retrieves the commission rendered by a live message.
func (r *CommissionRepository) GetByMessageID(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	record, err := scanCommission(r.db.QueryRowContext(ctx,
		"SELECT "+commissionColumns+" FROM commissions WHERE message_id = ?",
		messageID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("commission for message %s: %w", messageID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission by message id: %w", err)
	}
	return record, nil
}

// GetByID retrieves a commission by its store-assigned id.
func (r *CommissionRepository) GetByID(ctx context.Context, id int64) (*secondary.CommissionRecord, error) {
	record, err := scanCommission(r.db.QueryRowContext(ctx,
		"SELECT "+commissionColumns+" FROM commissions WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("commission %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}
	return record, nil
}

// ListAll retrieves every commission, finished ones included.
func (r *CommissionRepository) ListAll(ctx context.Context) ([]*secondary.CommissionRecord, error) {
	return r.list(ctx, "SELECT "+commissionColumns+" FROM commissions ORDER BY id")
}

// ListByChannel retrieves the commissions currently rendered in a channel.
func (r *CommissionRepository) ListByChannel(ctx context.Context, channelName string) ([]*secondary.CommissionRecord, error) {
	return r.list(ctx,
		"SELECT "+commissionColumns+" FROM commissions WHERE channel_name = ? ORDER BY id",
		channelName,
	)
}

func (r *CommissionRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.CommissionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	defer rows.Close()

	var records []*secondary.CommissionRecord
	for rows.Next() {
		record, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// mutate runs one UPDATE ... RETURNING and scans the post-update row.
func (r *CommissionRepository) mutate(ctx context.Context, what, query string, args ...any) (*secondary.CommissionRecord, error) {
	record, err := scanCommission(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", what, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", what, err)
	}
	return record, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Assign sets or clears (empty assignedTo) the assignment of the commission
// rendered by messageID.
func (r *CommissionRepository) Assign(ctx context.Context, messageID, assignedTo string) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "assign commission",
		"UPDATE commissions SET assigned_to = ? WHERE message_id = ? RETURNING "+commissionColumns,
		nullable(assignedTo), messageID,
	)
}

// AssignByNaturalKey sets the assignment before a first rendering exists.
func (r *CommissionRepository) AssignByNaturalKey(ctx context.Context, timestamp, email, assignedTo string) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "assign commission",
		"UPDATE commissions SET assigned_to = ? WHERE timestamp = ? AND email = ? RETURNING "+commissionColumns,
		nullable(assignedTo), timestamp, email,
	)
}

// SetAllowAnyArtist records the derived any-artist fallback flag.
func (r *CommissionRepository) SetAllowAnyArtist(ctx context.Context, timestamp, email string, allow bool) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "set allow_any_artist",
		"UPDATE commissions SET allow_any_artist = ? WHERE timestamp = ? AND email = ? RETURNING "+commissionColumns,
		allow, timestamp, email,
	)
}

// SetSpecialty records the derived specialty flag.
func (r *CommissionRepository) SetSpecialty(ctx context.Context, timestamp, email string, specialty bool) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "set specialty",
		"UPDATE commissions SET specialty = ? WHERE timestamp = ? AND email = ? RETURNING "+commissionColumns,
		specialty, timestamp, email,
	)
}

// SetAccepted updates the accepted flag of the commission rendered by messageID.
func (r *CommissionRepository) SetAccepted(ctx context.Context, messageID string, accepted bool) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "set accepted",
		"UPDATE commissions SET accepted = ? WHERE message_id = ? RETURNING "+commissionColumns,
		accepted, messageID,
	)
}

// SetHidden updates the hidden flag of the commission rendered by messageID.
func (r *CommissionRepository) SetHidden(ctx context.Context, messageID string, hidden bool) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "set hidden",
		"UPDATE commissions SET hidden = ? WHERE message_id = ? RETURNING "+commissionColumns,
		hidden, messageID,
	)
}

// SetInvoiced marks the commission rendered by messageID as invoiced.
func (r *CommissionRepository) SetInvoiced(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "set invoiced",
		"UPDATE commissions SET invoiced = 1 WHERE message_id = ? RETURNING "+commissionColumns,
		messageID,
	)
}

// SetPaid marks the commission rendered by messageID as paid.
func (r *CommissionRepository) SetPaid(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "set paid",
		"UPDATE commissions SET paid = 1 WHERE message_id = ? RETURNING "+commissionColumns,
		messageID,
	)
}

// SetFinished marks the commission rendered by messageID as finished.
func (r *CommissionRepository) SetFinished(ctx context.Context, messageID string) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "set finished",
		"UPDATE commissions SET finished = 1 WHERE message_id = ? RETURNING "+commissionColumns,
		messageID,
	)
}

// UpdateCounter persists the per-channel sequence number assigned to the
// commission's rendering.
func (r *CommissionRepository) UpdateCounter(ctx context.Context, timestamp, email string, counter int) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "update counter",
		"UPDATE commissions SET counter = ? WHERE timestamp = ? AND email = ? RETURNING "+commissionColumns,
		counter, timestamp, email,
	)
}

// UpdateMessageRef points the commission at its new live rendering.
func (r *CommissionRepository) UpdateMessageRef(ctx context.Context, timestamp, email, channelName, messageID string) (*secondary.CommissionRecord, error) {
	return r.mutate(ctx, "update message ref",
		"UPDATE commissions SET channel_name = ?, message_id = ? WHERE timestamp = ? AND email = ? RETURNING "+commissionColumns,
		nullable(channelName), nullable(messageID), timestamp, email,
	)
}

// Ensure CommissionRepository implements the interface
var _ secondary.CommissionRepository = (*CommissionRepository)(nil)
