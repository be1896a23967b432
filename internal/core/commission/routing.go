package commission

// RoutingTable is the injected channel configuration used to route
// commissions. Built once at startup from config; never mutated.
type RoutingTable struct {
	// ArtistChannels maps an artist name to that artist's queue channel.
	ArtistChannels map[string]string
	// AnyArtistChannel holds unassigned commissions open to any artist.
	AnyArtistChannel string
	// VoidChannel holds unassigned artist-exclusive commissions whose
	// requested artist's queue was full.
	VoidChannel string
	// IntakeChannel is the fallback when no configuration matches.
	IntakeChannel string
}

// Route returns the destination channel for a commission's assignment and
// visibility attributes. Deterministic and total: unassigned commissions go
// to the any-artist pool or the void, assigned ones to the artist's channel,
// and anything unmatched falls back to the intake channel.
func Route(assignedTo string, allowAnyArtist bool, rt RoutingTable) string {
	if assignedTo == "" {
		if allowAnyArtist {
			return rt.AnyArtistChannel
		}
		return rt.VoidChannel
	}
	if channel, ok := rt.ArtistChannels[assignedTo]; ok {
		return channel
	}
	return rt.IntakeChannel
}
