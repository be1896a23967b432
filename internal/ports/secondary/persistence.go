// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems: the commission store, the chat transport and the
// submission source.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup by id, message id or natural key
// misses. Callers distinguish it from structural query errors, which are
// fatal to the process.
var ErrNotFound = errors.New("not found")

// Submission carries the immutable fields of a new commission as taken from
// one ingested row (agreement column already dropped).
type Submission struct {
	Timestamp       string
	Email           string
	Name            string
	Twitch          string
	Twitter         string
	Discord         string
	ReferenceImages string
	Description     string
	Expression      string
	Notes           string
	ArtistChoice    string
	IfQueueIsFull   string
}

// CommissionRecord represents a commission as stored in persistence.
// Timestamp+Email form the unique natural key. AssignedTo empty means the
// commission sits in the unassigned pool; MessageID empty means it has no
// live rendering yet.
type CommissionRecord struct {
	ID              int64
	Timestamp       string
	Email           string
	Name            string
	Twitch          string
	Twitter         string
	Discord         string
	ReferenceImages string
	Description     string
	Expression      string
	Notes           string
	ArtistChoice    string
	IfQueueIsFull   string
	AssignedTo      string
	AllowAnyArtist  bool
	Specialty       bool
	Accepted        bool
	Hidden          bool
	Invoiced        bool
	Paid            bool
	Finished        bool
	ChannelName     string
	MessageID       string
	Counter         int
}

// CommissionRepository defines the secondary port for commission
// persistence. Every mutator is a single atomic read-modify-write on the
// store's own transaction boundary and returns the post-update row; the
// engine never assumes atomicity across calls.
type CommissionRepository interface {
	// Insert persists a new commission. Inserting a duplicate natural key is
	// a no-op that returns the existing row.
	Insert(ctx context.Context, sub *Submission) (*CommissionRecord, error)

	// GetByNaturalKey retrieves a commission by its (timestamp, email) key.
	GetByNaturalKey(ctx context.Context, timestamp, email string) (*CommissionRecord, error)

	// GetByMessageID retrieves the commission rendered by a live message.
	GetByMessageID(ctx context.Context, messageID string) (*CommissionRecord, error)

	// GetByID retrieves a commission by its store-assigned id.
	GetByID(ctx context.Context, id int64) (*CommissionRecord, error)

	// ListAll retrieves every commission, finished ones included.
	ListAll(ctx context.Context) ([]*CommissionRecord, error)

	// ListByChannel retrieves the commissions currently rendered in a channel.
	ListByChannel(ctx context.Context, channelName string) ([]*CommissionRecord, error)

	// Assign sets (or clears, with empty assignedTo) the assignment of the
	// commission rendered by messageID.
	Assign(ctx context.Context, messageID, assignedTo string) (*CommissionRecord, error)

	// AssignByNaturalKey sets the assignment before a first rendering exists.
	AssignByNaturalKey(ctx context.Context, timestamp, email, assignedTo string) (*CommissionRecord, error)

	// SetAllowAnyArtist records the derived any-artist fallback flag.
	SetAllowAnyArtist(ctx context.Context, timestamp, email string, allow bool) (*CommissionRecord, error)

	// SetSpecialty records the derived specialty flag.
	SetSpecialty(ctx context.Context, timestamp, email string, specialty bool) (*CommissionRecord, error)

	// SetAccepted updates the accepted flag of the commission rendered by messageID.
	SetAccepted(ctx context.Context, messageID string, accepted bool) (*CommissionRecord, error)

	// SetHidden updates the hidden flag of the commission rendered by messageID.
	SetHidden(ctx context.Context, messageID string, hidden bool) (*CommissionRecord, error)

	// SetInvoiced marks the commission rendered by messageID as invoiced.
	SetInvoiced(ctx context.Context, messageID string) (*CommissionRecord, error)

	// SetPaid marks the commission rendered by messageID as paid.
	SetPaid(ctx context.Context, messageID string) (*CommissionRecord, error)

	// SetFinished marks the commission rendered by messageID as finished.
	SetFinished(ctx context.Context, messageID string) (*CommissionRecord, error)

	// UpdateCounter persists the per-channel sequence number assigned to the
	// commission's rendering.
	UpdateCounter(ctx context.Context, timestamp, email string, counter int) (*CommissionRecord, error)

	// UpdateMessageRef points the commission at its new live rendering.
	UpdateMessageRef(ctx context.Context, timestamp, email, channelName, messageID string) (*CommissionRecord, error)
}

// ChannelRepository defines the secondary port for channel counter state.
type ChannelRepository interface {
	// EnsureChannel creates the channel row if missing (counter starts at -1).
	EnsureChannel(ctx context.Context, channelName string) error

	// IncrementCounter atomically increments the channel's message counter
	// and returns the new value.
	IncrementCounter(ctx context.Context, channelName string) (int, error)
}
