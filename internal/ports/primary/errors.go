package primary

import "errors"

// ErrConcurrentAction is the serializer's mutual-exclusion denial: another
// lifecycle transition is already in flight for the same commission. The
// second actor is told to try again; the condition is transient and is not
// logged as an error.
var ErrConcurrentAction = errors.New("someone else acted on that commission right before you did, please try again in a few moments")

// Rejection is a precondition failure (claim on a claimed commission,
// unauthorized claimer, unknown user). It carries the reply shown to the
// acting user; no state changed and nothing is logged as an error.
type Rejection struct {
	Reply string
}

func (r *Rejection) Error() string {
	return r.Reply
}

// AsRejection unwraps err into a Rejection if it is one.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
