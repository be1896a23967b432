// Package primary defines the primary ports (driving adapters) for the
// application: the interfaces through which interactive controls and the
// operator CLI drive the commission queue.
package primary

import "fmt"

// Action is the closed set of interactive controls a commission rendering
// can raise. Adding an action means extending this list and every exhaustive
// switch over it; the dispatcher returns an error for anything else.
type Action int

const (
	ActionAccept Action = iota
	ActionReject
	ActionClaim
	ActionShow
	ActionHide
	ActionInvoice
	ActionPay
	ActionFinish
)

// Actions lists all actions in display order.
var Actions = []Action{
	ActionAccept,
	ActionReject,
	ActionClaim,
	ActionShow,
	ActionHide,
	ActionInvoice,
	ActionPay,
	ActionFinish,
}

// String returns the action's control label.
func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "Accept"
	case ActionReject:
		return "Reject"
	case ActionClaim:
		return "Claim"
	case ActionShow:
		return "Show"
	case ActionHide:
		return "Hide"
	case ActionInvoice:
		return "Invoiced"
	case ActionPay:
		return "Paid"
	case ActionFinish:
		return "Done"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Emoji returns the control emoji for the action.
func (a Action) Emoji() string {
	switch a {
	case ActionAccept:
		return "✅"
	case ActionReject:
		return "❌"
	case ActionClaim:
		return "✋"
	case ActionShow:
		return "▶"
	case ActionHide:
		return "⏹"
	case ActionInvoice:
		return "🗒️"
	case ActionPay:
		return "💵"
	case ActionFinish:
		return "🎉"
	default:
		return "❓"
	}
}

// Audited reports whether the action emits an audit notification and a
// status page refresh. Show and Hide are display-only toggles.
func (a Action) Audited() bool {
	return a != ActionShow && a != ActionHide
}
