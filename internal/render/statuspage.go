package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trickcandle/commissionqueue/internal/core/commission"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// StatusPagePrefix identifies the persistent status page message when
// scanning channel history. Editing keeps the prefix stable.
const StatusPagePrefix = "**Commission queue status**"

// StatusPage builds the aggregate status table: every non-finished
// commission sorted by status, plus a finished count. Regenerating from the
// same commission set always yields the same text.
func StatusPage(records []*secondary.CommissionRecord, voidChannel string) string {
	active := make([]*secondary.CommissionRecord, 0, len(records))
	finished := 0
	for _, rec := range records {
		if rec.Finished {
			finished++
			continue
		}
		active = append(active, rec)
	}

	sort.SliceStable(active, func(i, j int) bool {
		si := commission.Classify(flagsOf(active[i])).SortKey()
		sj := commission.Classify(flagsOf(active[j])).SortKey()
		if si != sj {
			return si < sj
		}
		return active[i].ID < active[j].ID
	})

	var b strings.Builder
	b.WriteString(StatusPagePrefix)
	b.WriteString("\n")
	for _, rec := range active {
		status := commission.Classify(flagsOf(rec))
		label := fmt.Sprintf("%s %s", status.Emoji(), status.Label(rec.ArtistChoice))
		if rec.ChannelName == voidChannel {
			label = "🕳️ Voided"
		}
		assigned := rec.AssignedTo
		if assigned == "" {
			assigned = "—"
		}
		fmt.Fprintf(&b, "#%d · %s · %s · %s\n", rec.ID, rec.Name, label, assigned)
	}
	fmt.Fprintf(&b, "\nFinished commissions: %d\n", finished)
	return b.String()
}
