package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// ChannelRepository implements secondary.ChannelRepository with SQLite.
type ChannelRepository struct {
	db *sql.DB
}

// NewChannelRepository creates a new SQLite channel repository.
func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// EnsureChannel creates the channel row if missing. The counter column
// defaults to -1 so the first counted message lands on 0.
func (r *ChannelRepository) EnsureChannel(ctx context.Context, channelName string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO channels (channel_name) VALUES (?)",
		channelName,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure channel: %w", err)
	}
	return nil
}

// IncrementCounter atomically increments the channel's message counter and
// returns the new value. Increment-and-return is one statement, so two
// concurrent callers always observe distinct values.
func (r *ChannelRepository) IncrementCounter(ctx context.Context, channelName string) (int, error) {
	var counter int
	err := r.db.QueryRowContext(ctx,
		"UPDATE channels SET counter = counter + 1 WHERE channel_name = ? RETURNING counter",
		channelName,
	).Scan(&counter)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("channel %s: %w", channelName, secondary.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment channel counter: %w", err)
	}
	return counter, nil
}

// Ensure ChannelRepository implements the interface
var _ secondary.ChannelRepository = (*ChannelRepository)(nil)
