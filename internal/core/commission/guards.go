package commission

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ClaimContext provides context for claim guards. Populated by the caller
// with the commission's current state and the resolved claimer identity.
type ClaimContext struct {
	AssignedTo     string
	AllowAnyArtist bool
	ArtistChoice   string
	ClaimerName    string // resolved artist name; empty when the user is unknown
	InVoidChannel  bool
}

// CanClaim evaluates whether a claim is allowed.
// Rules: the commission must be unassigned, the claimer must resolve to a
// known artist, and an artist-exclusive commission outside the void channel
// may only be claimed by the requested artist.
func CanClaim(ctx ClaimContext) GuardResult {
	if ctx.AssignedTo != "" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("This commission is already claimed by %s.", ctx.AssignedTo),
		}
	}
	if ctx.ClaimerName == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "You cannot claim commissions.",
		}
	}
	if !ctx.AllowAnyArtist && !ctx.InVoidChannel && ctx.ClaimerName != ctx.ArtistChoice {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("This commission is reserved for %s.", ctx.ArtistChoice),
		}
	}
	return GuardResult{Allowed: true}
}

// IsRecoveryClaim reports whether a claim returns a voided commission to its
// originally requested artist. Recovery claims assign without auto-accepting;
// the artist still confirms with an explicit Accept.
func IsRecoveryClaim(ctx ClaimContext) bool {
	return ctx.InVoidChannel && ctx.ClaimerName != "" && ctx.ClaimerName == ctx.ArtistChoice
}

// RejectContext provides context for reject guards.
type RejectContext struct {
	AssignedTo         string
	RejectorName       string // resolved artist name; empty when the user is unknown
	RestrictToAssignee bool
}

// CanReject evaluates whether a reject is allowed.
// Rule: the commission must currently be assigned. When restricted by
// configuration, only the assigned artist may reject.
func CanReject(ctx RejectContext) GuardResult {
	if ctx.AssignedTo == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "This commission is not assigned to anyone.",
		}
	}
	if ctx.RestrictToAssignee && ctx.RejectorName != ctx.AssignedTo {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Only %s can reject this commission.", ctx.AssignedTo),
		}
	}
	return GuardResult{Allowed: true}
}
