// Package render builds the textual content of commission renderings and
// the aggregate status page. Pure text assembly, no I/O; the chat transport
// decides how the text is displayed.
package render

import (
	"fmt"
	"strings"

	"github.com/trickcandle/commissionqueue/internal/core/commission"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// HiddenPlaceholder replaces a card's content while the commission is hidden.
const HiddenPlaceholder = "⏹ *(hidden commission — press Show to reveal)*"

// Card renders the live message content for a commission.
func Card(rec *secondary.CommissionRecord) string {
	status := commission.Classify(flagsOf(rec))

	var b strings.Builder
	fmt.Fprintf(&b, "**#%d · %s** (%d)\n", rec.ID, rec.Name, rec.Counter)
	fmt.Fprintf(&b, "%s %s\n", status.Emoji(), status.Label(rec.ArtistChoice))

	if rec.Hidden {
		b.WriteString(HiddenPlaceholder)
		b.WriteString("\n")
		writeControls(&b, rec)
		return b.String()
	}

	writeField(&b, "Description", rec.Description)
	writeField(&b, "Expression", rec.Expression)
	writeField(&b, "References", rec.ReferenceImages)
	writeField(&b, "Notes", rec.Notes)

	var handles []string
	for _, h := range []struct{ label, value string }{
		{"twitch", rec.Twitch},
		{"twitter", rec.Twitter},
		{"discord", rec.Discord},
	} {
		if h.value != "" {
			handles = append(handles, h.label+": "+h.value)
		}
	}
	writeField(&b, "Contact", strings.Join(handles, " · "))

	if rec.AssignedTo != "" {
		writeField(&b, "Assigned to", rec.AssignedTo)
	}
	if rec.Specialty {
		b.WriteString("✨ Specialty request\n")
	}
	writeControls(&b, rec)
	return b.String()
}

// writeControls lists the card's interactive controls for its current flags.
func writeControls(b *strings.Builder, rec *secondary.CommissionRecord) {
	actions := AvailableActions(rec)
	labels := make([]string, len(actions))
	for i, action := range actions {
		labels[i] = action.Emoji() + " " + action.String()
	}
	fmt.Fprintf(b, "[%s]\n", strings.Join(labels, " | "))
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "**%s**: %s\n", label, value)
}

func flagsOf(rec *secondary.CommissionRecord) commission.Flags {
	return commission.Flags{
		AssignedTo:     rec.AssignedTo,
		AllowAnyArtist: rec.AllowAnyArtist,
		Accepted:       rec.Accepted,
		Hidden:         rec.Hidden,
		Invoiced:       rec.Invoiced,
		Paid:           rec.Paid,
		Finished:       rec.Finished,
	}
}
