package commission

import "strings"

// NaturalKey identifies a unique submission for de-duplication.
// Immutable once a commission is created.
type NaturalKey struct {
	Timestamp string
	Email     string
}

// String returns the key in a form usable as a lock key before a
// commission has a live message.
func (k NaturalKey) String() string {
	return k.Timestamp + "|" + k.Email
}

// anyArtistPrefix marks the artist-choice free text that opts into the
// open pool instead of naming an artist.
const anyArtistPrefix = "Any artist"

// DeriveAssignment maps the artist-choice free text to the initial
// assignment: a named artist, or empty (unassigned pool) when the
// submitter chose "Any artist ...".
func DeriveAssignment(artistChoice string) string {
	if strings.HasPrefix(artistChoice, anyArtistPrefix) {
		return ""
	}
	return artistChoice
}

// DeriveAllowAnyArtist maps the if-queue-is-full free text to the
// allow_any_artist flag. Submitters who mention "void" declined the
// any-artist fallback and wait in the void channel instead.
func DeriveAllowAnyArtist(ifQueueIsFull string) bool {
	return !strings.Contains(strings.ToLower(ifQueueIsFull), "void")
}

// DeriveSpecialty maps the batch origin and artist-choice free text to the
// specialty flag. Specialty-batch rows are always specialty requests.
func DeriveSpecialty(specialtyBatch bool, artistChoice string) bool {
	if specialtyBatch {
		return true
	}
	return strings.Contains(strings.ToLower(artistChoice), "specialty")
}
