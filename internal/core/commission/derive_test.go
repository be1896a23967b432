package commission

import "testing"

func TestDeriveAssignment(t *testing.T) {
	tests := []struct {
		name         string
		artistChoice string
		want         string
	}{
		{"named artist", "Jonas", "Jonas"},
		{"any artist opts into the pool", "Any artist is fine!", ""},
		{"exact any-artist prefix", "Any artist", ""},
		{"case sensitive prefix", "any artist", "any artist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveAssignment(tt.artistChoice); got != tt.want {
				t.Errorf("DeriveAssignment(%q) = %q, want %q", tt.artistChoice, got, tt.want)
			}
		})
	}
}

func TestDeriveAllowAnyArtist(t *testing.T) {
	tests := []struct {
		name          string
		ifQueueIsFull string
		want          bool
	}{
		{"empty text allows anyone", "", true},
		{"void opts out", "Send it to the void", false},
		{"void is case insensitive", "VOID please", false},
		{"other preference allows anyone", "Give it to whoever is free", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveAllowAnyArtist(tt.ifQueueIsFull); got != tt.want {
				t.Errorf("DeriveAllowAnyArtist(%q) = %v, want %v", tt.ifQueueIsFull, got, tt.want)
			}
		})
	}
}

func TestDeriveSpecialty(t *testing.T) {
	if !DeriveSpecialty(true, "Jonas") {
		t.Error("specialty batch row should be specialty")
	}
	if !DeriveSpecialty(false, "Jonas (specialty)") {
		t.Error("specialty marker in free text should be specialty")
	}
	if DeriveSpecialty(false, "Jonas") {
		t.Error("plain standard row should not be specialty")
	}
}

func TestNaturalKeyString(t *testing.T) {
	a := NaturalKey{Timestamp: "10/03/2021 15:36:00", Email: "a@b.c"}
	b := NaturalKey{Timestamp: "10/03/2021 15:36:00", Email: "a@b.d"}
	if a.String() == b.String() {
		t.Error("distinct natural keys must produce distinct lock keys")
	}
}
