// Package delivery contains the Delivery aggregate: the record binding an
// order to the driver carrying it. A delivery is created when its order
// enters preparation and holds the single-winner driver assignment.
package delivery

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was
	// not created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

	// ErrDriverAlreadyAssigned is returned when assigning a driver to a
	// delivery that already has one. Callers treat this as "lost the race",
	// not as a failure.
	ErrDriverAlreadyAssigned = errors.New("delivery already has a driver assigned")

	// ErrDriverNotAssigned is returned when a driver-scoped action is
	// attempted by a driver who does not hold the assignment.
	ErrDriverNotAssigned = errors.New("driver is not assigned to this delivery")

	// ErrWrongConfirmationCode is returned when completing a delivery with
	// a code that does not match.
	ErrWrongConfirmationCode = errors.New("confirmation code does not match")
)

// Delivery is the aggregate tracking one order's journey from the food place
// to the customer.
//
// Invariants:
//   - at most one driver ever holds the assignment; the authoritative
//     compare-and-set lives in the repository (conditional update on a null
//     driver column), this aggregate re-checks it for in-memory use
//   - a delivery can only be cancelled while still in AssigningDriver
type Delivery struct {
	id               kernel.UUID
	orderID          kernel.UUID
	addressID        kernel.UUID
	driverID         *kernel.UUID
	status           Status
	confirmationCode string
	createdAt        time.Time
	assignedAt       *time.Time

	isConstructed bool
}

// NewDelivery creates a delivery in AssigningDriver status with a fresh
// four-digit confirmation code.
func NewDelivery(id, orderID, addressID kernel.UUID) (*Delivery, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), addressID.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		id:               id,
		orderID:          orderID,
		addressID:        addressID,
		status:           AssigningDriver,
		confirmationCode: newConfirmationCode(),
		createdAt:        time.Now().UTC(),
		isConstructed:    true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
func RestoreDelivery(
	id, orderID, addressID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	confirmationCode string,
	createdAt time.Time,
	assignedAt *time.Time,
) (*Delivery, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		id:               id,
		orderID:          orderID,
		addressID:        addressID,
		driverID:         driverID,
		status:           status,
		confirmationCode: confirmationCode,
		createdAt:        createdAt,
		assignedAt:       assignedAt,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the owning order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// AddressID returns the dropoff address identifier.
func (d *Delivery) AddressID() kernel.UUID {
	return d.addressID
}

// Driver returns the assigned driver's ID, or nil while unassigned.
func (d *Delivery) Driver() *kernel.UUID {
	return d.driverID
}

// Status returns the current delivery status.
func (d *Delivery) Status() Status {
	return d.status
}

// ConfirmationCode returns the code the driver must present on handover.
func (d *Delivery) ConfirmationCode() string {
	return d.confirmationCode
}

// CreatedAt returns the creation timestamp (UTC).
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// AssignedAt returns when the driver won the offer, or nil while unassigned.
func (d *Delivery) AssignedAt() *time.Time {
	return d.assignedAt
}

// Assign records the winning driver. Fails with ErrDriverAlreadyAssigned if
// a driver already holds the assignment, and with a status error if the
// delivery is no longer assignable.
func (d *Delivery) Assign(driverID kernel.UUID) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	if d.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	newStatus, err := d.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	d.status = newStatus
	d.driverID = &driverID
	d.assignedAt = &now
	return nil
}

// MarkPickedUp records the assigned driver collecting the order.
// Only the assigned driver may do this.
func (d *Delivery) MarkPickedUp(driverID kernel.UUID) error {
	if err := d.requireAssignedDriver(driverID); err != nil {
		return err
	}

	newStatus, err := d.status.TransitionTo(PickedUp)
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// MarkDelivered records the handover to the customer. Only the assigned
// driver may do this, and the presented confirmation code must match.
func (d *Delivery) MarkDelivered(driverID kernel.UUID, confirmationCode string) error {
	if err := d.requireAssignedDriver(driverID); err != nil {
		return err
	}
	if confirmationCode != d.confirmationCode {
		return ErrWrongConfirmationCode
	}

	newStatus, err := d.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Cancel abandons the delivery. Only possible while still assigning.
func (d *Delivery) Cancel() error {
	if err := d.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// IsAssignable reports whether the delivery can still accept a driver.
func (d *Delivery) IsAssignable() bool {
	return d.status == AssigningDriver && d.driverID == nil
}

func (d *Delivery) requireAssignedDriver(driverID kernel.UUID) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	if d.driverID == nil || !d.driverID.IsEqual(driverID) {
		return ErrDriverNotAssigned
	}
	return nil
}

func newConfirmationCode() string {
	return fmt.Sprintf("%04d", rand.IntN(10000)) //nolint:gosec // handover code, not a secret
}
