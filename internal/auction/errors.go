package auction

import (
	"errors"
	"fmt"
)

// Reason is a machine-readable rejection code returned to the admin panel.
// Rejections are client-correctable and are never retried automatically.
type Reason string

const (
	ReasonAlreadySettled     Reason = "AlreadySettled"
	ReasonBelowBasePrice     Reason = "BelowBasePrice"
	ReasonInvalidIncrement   Reason = "InvalidIncrement"
	ReasonInsufficientBudget Reason = "InsufficientBudget"
	ReasonNotFound           Reason = "NotFound"

	// ReasonNotSettled rejects a reversal of a player that is still
	// Available; there is nothing to reverse.
	ReasonNotSettled Reason = "NotSettled"
)

// Rejection is a validation failure: the proposed operation is illegal
// against current state. State is left untouched.
type Rejection struct {
	Reason  Reason
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Reason, r.Message)
}

func reject(reason Reason, format string, args ...interface{}) *Rejection {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ErrConflict is returned when a settlement keeps losing the row-lock race
// and the bounded retries are exhausted. Distinct from a Rejection: the
// request was never judged illegal, it just could not get a serialized turn.
var ErrConflict = errors.New("settlement conflict, retries exhausted")

// AsRejection unwraps err into a *Rejection if it is one.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
