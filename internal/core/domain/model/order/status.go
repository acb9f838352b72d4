package order

import (
	"fmt"
	"strings"

	"orderprocessing/internal/pkg/errs"
)

// Status represents the fulfillment stage of an order.
//
// State transitions:
//
//	Pending ──> Processing ──> Shipped ──> Delivered
//	   │
//	   └──> Cancelled
//
// Delivered and Cancelled are terminal. Cancellation is a separate operation
// and is not reachable through CanTransitionTo.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota
	Pending
	Processing
	Shipped
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Processing, Shipped, Delivered, Cancelled}
}

// ParseStatus matches raw against the status names, ignoring case and
// surrounding blanks. Numeric input and "Unknown" are not recognised.
//
// Example:
//
//	status, ok := order.ParseStatus(" shipped ")
//	// status == order.Shipped, ok == true
func ParseStatus(raw string) (Status, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Unknown, false
	}
	for status, text := range getValidStatusStrings() {
		if strings.EqualFold(text, name) {
			return status, true
		}
	}
	return Unknown, false
}

// Validate returns an error for Unknown and out-of-range values, e.g. a
// corrupted status column.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values print as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further change of any kind is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether next is the single forward step allowed
// from s. Same-state, backward and skip-ahead moves are all rejected, as is
// any move into Cancelled.
func (s Status) CanTransitionTo(next Status) bool {
	//nolint:exhaustive // every other pair is illegal
	switch s {
	case Pending:
		return next == Processing
	case Processing:
		return next == Shipped
	case Shipped:
		return next == Delivered
	default:
		return false
	}
}

// CanBeCancelled is true only for Pending orders.
func (s Status) CanBeCancelled() bool {
	return s == Pending
}
