// Package commission contains the pure business logic for the commission
// queue. This is the Functional Core - no I/O, only pure functions.
package commission

import "fmt"

// Flags is the lifecycle flag tuple of a commission. The stored flags are
// authoritative; Status is a projection of them.
type Flags struct {
	AssignedTo     string // empty = unassigned pool
	AllowAnyArtist bool
	Accepted       bool
	Hidden         bool
	Invoiced       bool
	Paid           bool
	Finished       bool
}

// Status is the display status derived from a commission's flags.
// The zero value is ClaimableAnyone; values ascend in lifecycle order,
// so int(status) doubles as the sort key for status pages.
type Status int

const (
	StatusClaimableAnyone Status = iota
	StatusClaimableExclusive
	StatusAccepted
	StatusInvoiced
	StatusPaid
	StatusFinished
)

// Classify maps a flag tuple to exactly one status. Precedence is strict,
// top to bottom: finished beats paid beats invoiced beats accepted; anything
// else is in the claimable pool.
func Classify(f Flags) Status {
	switch {
	case f.Finished:
		return StatusFinished
	case f.Paid:
		return StatusPaid
	case f.Invoiced:
		return StatusInvoiced
	case f.Accepted:
		return StatusAccepted
	case f.AllowAnyArtist:
		return StatusClaimableAnyone
	default:
		return StatusClaimableExclusive
	}
}

// SortKey returns the ascending status-page ordering key
// (ClaimableAnyone first, Finished last).
func (s Status) SortKey() int {
	return int(s)
}

// Label returns the display name for the status. ClaimableExclusive is
// parameterized by the requested artist.
func (s Status) Label(artistChoice string) string {
	switch s {
	case StatusClaimableAnyone:
		return "Claimable by anyone"
	case StatusClaimableExclusive:
		return fmt.Sprintf("Waiting for %s", artistChoice)
	case StatusAccepted:
		return "Accepted"
	case StatusInvoiced:
		return "Invoiced"
	case StatusPaid:
		return "Paid"
	case StatusFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Emoji returns the status-page emoji for the status.
func (s Status) Emoji() string {
	switch s {
	case StatusClaimableAnyone:
		return "✋"
	case StatusClaimableExclusive:
		return "⏳"
	case StatusAccepted:
		return "✅"
	case StatusInvoiced:
		return "🗒️"
	case StatusPaid:
		return "💵"
	case StatusFinished:
		return "🎉"
	default:
		return "❓"
	}
}

// Color returns the embed accent color for the status.
func (s Status) Color() int {
	switch s {
	case StatusClaimableAnyone:
		return 0x3498DB
	case StatusClaimableExclusive:
		return 0x9B59B6
	case StatusAccepted:
		return 0x2ECC71
	case StatusInvoiced:
		return 0xE67E22
	case StatusPaid:
		return 0xF1C40F
	case StatusFinished:
		return 0x95A5A6
	default:
		return 0x000000
	}
}
