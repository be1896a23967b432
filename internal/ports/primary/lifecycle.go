package primary

import "context"

// Actor identifies the user behind an interactive action.
type Actor struct {
	MemberID    string
	DisplayName string
}

// Commission is a commission as exposed through the primary ports.
type Commission struct {
	ID             int64
	Timestamp      string
	Email          string
	Name           string
	AssignedTo     string
	AllowAnyArtist bool
	Specialty      bool
	Accepted       bool
	Hidden         bool
	Invoiced       bool
	Paid           bool
	Finished       bool
	ChannelName    string
	MessageID      string
	Counter        int
}

// CommissionActions is the primary port driven by interactive controls on
// commission renderings. Exactly one action per commission is in flight at
// any time; a concurrent second action fails with ErrConcurrentAction and a
// failed precondition fails with *Rejection.
type CommissionActions interface {
	HandleAction(ctx context.Context, action Action, actor Actor, messageID string) (*Commission, error)
}

// SyncReport summarizes one ingestion run.
type SyncReport struct {
	Fetched  int
	Admitted int
	Skipped  int
}

// IngestService is the primary port for the spreadsheet reconciliation pull.
type IngestService interface {
	Sync(ctx context.Context) (*SyncReport, error)
}

// MaintenanceService is the primary port for operator maintenance: full
// channel cleanup plus resend, and status page access.
type MaintenanceService interface {
	// CleanupAndResend deletes all bot-authored messages (in every managed
	// channel, or only in channel when non-empty) and re-sends the stored
	// commissions, optionally in randomized order.
	CleanupAndResend(ctx context.Context, channel string, shuffle bool) error

	// StatusPageText renders the current status page without touching chat.
	StatusPageText(ctx context.Context) (string, error)

	// RefreshStatusPage rebuilds the persistent status page message.
	RefreshStatusPage(ctx context.Context) error
}
