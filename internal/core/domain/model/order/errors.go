package order

import (
	"errors"
)

var (
	// ErrInvalidOrder matches every creation request that breaks an order rule.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrTransitionRejected is returned when a status change or cancellation
	// is not allowed from the current status.
	ErrTransitionRejected = errors.New("status transition rejected")

	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrRulesIsNotConstructed is returned when a zero Rules value is used.
	ErrRulesIsNotConstructed = errors.New("Rules must be created via NewRules constructor")
)

// InvalidOrderError carries the human-readable reason a creation request was
// refused. It matches ErrInvalidOrder with errors.Is; Cause, when present,
// holds the typed errs value describing the offending field.
type InvalidOrderError struct {
	Reason string
	Cause  error
}

func newInvalidOrderError(reason string, cause error) *InvalidOrderError {
	return &InvalidOrderError{Reason: reason, Cause: cause}
}

func (e *InvalidOrderError) Error() string {
	return e.Reason
}

func (e *InvalidOrderError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidOrder}
	}
	return []error{ErrInvalidOrder, e.Cause}
}
