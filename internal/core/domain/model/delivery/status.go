package delivery

import (
	"fmt"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	AssigningDriver ──> Assigned ──> PickedUp ──> Delivered
//	       │
//	       └──> Cancelled
//
// Cancellation is only possible while the delivery is still looking for a
// driver; once a driver holds the assignment, failures are reported rather
// than rolled back.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// AssigningDriver is the initial status: an offer is (or will be) open
	// to candidate drivers.
	AssigningDriver

	// Assigned indicates exactly one driver won the offer.
	Assigned

	// PickedUp indicates the driver collected the order from the food place.
	PickedUp

	// Delivered indicates the driver handed the order to the customer. Final state.
	Delivered

	// Cancelled indicates the delivery was abandoned before a driver was
	// assigned. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "unknown",
		AssigningDriver: "assigningDriver",
		Assigned:        "assigned",
		PickedUp:        "pickedUp",
		Delivered:       "delivered",
		Cancelled:       "cancelled",
	}
}

func transitions() map[Status][]Status {
	return map[Status][]Status{
		AssigningDriver: {Assigned, Cancelled},
		Assigned:        {PickedUp},
		PickedUp:        {Delivered},
		Delivered:       {},
		Cancelled:       {},
	}
}

// Validate checks the Status is one of the defined delivery states.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the transition table allows moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move from s to next and returns the new status.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot transition delivery from %s to %s", s, next))
	}
	return next, nil
}
