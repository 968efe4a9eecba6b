// Package payment contains the Payment entity: the record tying an order to
// a payment-gateway intent. The gateway's wire protocol is opaque to the
// domain; only the intent handle and the capture lifecycle live here.
package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Status represents a payment intent's lifecycle.
//
// The only legal transitions are:
//
//	PendingCapture ──> Completed   (Capture)
//	PendingCapture ──> Cancelled   (Cancel)
//
// Capture and Cancel are idempotent on their own terminal state: capturing an
// already-Completed payment or cancelling an already-terminal one is a no-op.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// PendingCapture indicates the intent is created and funds are reserved
	// but not taken.
	PendingCapture

	// Completed indicates the intent was captured. Final state.
	Completed

	// Cancelled indicates the intent was cancelled and funds released. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		PendingCapture: "PendingCapture",
		Completed:      "Completed",
		Cancelled:      "Cancelled",
	}
}

// Validate checks the Status is a defined payment state.
func (s Status) Validate() error {
	switch s {
	case PendingCapture, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
}

// String returns the status name. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

var (
	// ErrPaymentIsNotConstructed is returned when a Payment instance was not
	// created through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

	// ErrPaymentAlreadyCancelled is returned when capturing a cancelled payment.
	ErrPaymentAlreadyCancelled = errors.New("payment intent has been cancelled")
)

// Payment records the gateway intent backing an order. Mutated only through
// Capture and Cancel; every other transition is rejected.
type Payment struct {
	orderID  kernel.UUID
	intentID string
	status   Status
	amount   kernel.Money

	isConstructed bool
	updatedAt     time.Time
}

// NewPayment creates a payment in PendingCapture for a freshly created
// gateway intent.
func NewPayment(orderID kernel.UUID, intentID string, amount kernel.Money) (*Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if intentID == "" {
		return nil, errs.NewValueIsRequiredError("intentID")
	}
	if amount <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	return &Payment{
		orderID:       orderID,
		intentID:      intentID,
		status:        PendingCapture,
		amount:        amount,
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(orderID kernel.UUID, intentID string, status Status, amount kernel.Money) (*Payment, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Payment{
		orderID:       orderID,
		intentID:      intentID,
		status:        status,
		amount:        amount,
		updatedAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// Validate ensures the Payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// OrderID returns the owning order's identifier.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// IntentID returns the opaque gateway intent handle.
func (p *Payment) IntentID() string {
	return p.intentID
}

// Status returns the current payment status.
func (p *Payment) Status() Status {
	return p.status
}

// Amount returns the amount to capture, in pence.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// Capture marks the intent captured. Idempotent: capturing an
// already-Completed payment changes nothing and reports (false, nil).
// Capturing a cancelled payment fails.
func (p *Payment) Capture() (changed bool, err error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	switch p.status {
	case Completed:
		return false, nil
	case Cancelled:
		return false, ErrPaymentAlreadyCancelled
	default:
		p.status = Completed
		p.updatedAt = time.Now().UTC()
		return true, nil
	}
}

// Cancel marks the intent cancelled. Idempotent: cancelling an
// already-terminal payment, captured or cancelled, changes nothing and
// reports (false, nil).
func (p *Payment) Cancel() (changed bool, err error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	switch p.status {
	case Cancelled, Completed:
		return false, nil
	default:
		p.status = Cancelled
		p.updatedAt = time.Now().UTC()
		return true, nil
	}
}
