package render

import (
	"github.com/trickcandle/commissionqueue/internal/ports/primary"
	"github.com/trickcandle/commissionqueue/internal/ports/secondary"
)

// AvailableActions computes which interactive controls a rendering offers
// for the commission's current flags. Hidden cards only offer Show; open
// cards offer Claim; assigned cards move through Accept/Reject and the
// Invoice → Pay → Done billing chain.
func AvailableActions(rec *secondary.CommissionRecord) []primary.Action {
	if rec.Hidden {
		return []primary.Action{primary.ActionShow}
	}

	claimable := rec.AssignedTo == ""
	billed := rec.Invoiced || rec.Paid || rec.Finished

	var actions []primary.Action
	if !billed {
		if claimable {
			actions = append(actions, primary.ActionClaim)
		} else {
			if !rec.Accepted {
				actions = append(actions, primary.ActionAccept)
			}
			actions = append(actions, primary.ActionReject)
		}
	}
	actions = append(actions, primary.ActionHide)
	if !claimable && rec.Accepted {
		if !rec.Invoiced {
			actions = append(actions, primary.ActionInvoice)
		} else if !rec.Paid {
			actions = append(actions, primary.ActionPay)
		}
		if !rec.Finished {
			actions = append(actions, primary.ActionFinish)
		}
	}
	return actions
}
