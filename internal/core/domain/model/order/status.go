package order

import (
	"fmt"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> PendingConfirmation ──> Preparing ──> ReadyForPickup ──> Delivering ──> Completed
//	   │                │                   │               │                │
//	   └────────────────┴───────────────────┴───────────────┴────────────────┴──> Cancelled
//
// The transition rules live in the transitions table rather than in enum
// arithmetic, so the valid successors of each state are explicit and
// independently testable.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order, before the
	// food place has been asked to confirm it.
	Pending

	// PendingConfirmation indicates the food place has been asked to
	// confirm or reject the order.
	PendingConfirmation

	// Preparing indicates the food place confirmed the order and is
	// preparing it. The delivery record is created on entry to this state.
	Preparing

	// ReadyForPickup indicates the food has been prepared and is waiting
	// for the driver.
	ReadyForPickup

	// Delivering indicates the driver has picked the order up.
	Delivering

	// Completed indicates the order was delivered. Final state.
	Completed

	// Cancelled indicates the order was cancelled before completion. Final state.
	Cancelled
)

// InvalidStatusTransitionError is returned when a requested transition is not
// present in the transition table. Unwraps to errs.ErrValueIsInvalid so
// callers can classify it as a domain invariant violation.
type InvalidStatusTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return errs.ErrValueIsInvalid
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "unknown",
		Pending:             "pending",
		PendingConfirmation: "pendingConfirmation",
		Preparing:           "preparing",
		ReadyForPickup:      "readyForPickup",
		Delivering:          "delivering",
		Completed:           "completed",
		Cancelled:           "cancelled",
	}
}

// transitions is the explicit state transition table. A status maps to the
// set of statuses it may move to; absence means the transition is illegal.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:             {PendingConfirmation, Cancelled},
		PendingConfirmation: {Preparing, Cancelled},
		Preparing:           {ReadyForPickup, Cancelled},
		ReadyForPickup:      {Delivering, Cancelled},
		Delivering:          {Completed, Cancelled},
		Completed:           {},
		Cancelled:           {},
	}
}

// Validate checks the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire name back into a Status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// CanTransitionTo reports whether the transition table allows moving from s
// to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Next returns the single forward successor of s, excluding Cancelled.
// ok is false for terminal states.
func (s Status) Next() (next Status, ok bool) {
	for _, allowed := range transitions()[s] {
		if allowed != Cancelled {
			return allowed, true
		}
	}
	return Unknown, false
}

// IsTerminal reports whether s admits no further transitions.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0
}

// TransitionTo validates the move from s to next against the table and
// returns the new status, or an InvalidStatusTransitionError.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, &InvalidStatusTransitionError{From: s, To: next}
	}
	return next, nil
}
