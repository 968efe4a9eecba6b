package order

import (
	"errors"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is returned when constructing an order without items.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")
)

// Order is the aggregate root for a food order. It owns the item lines, the
// pricing snapshot and the lifecycle status; the delivery and payment records
// reference it by ID and are coordinated by the application layer.
//
// Invariants:
//   - status only moves along the transition table in status.go
//   - items and totals are fixed at creation (cart snapshot)
//   - only the owning food place may advance the status; only the owning
//     customer or food place may cancel (enforced by the command handlers,
//     which hold the ownership context)
type Order struct {
	id                kernel.UUID
	customerID        kernel.UUID
	foodPlaceID       kernel.UUID
	deliveryAddressID kernel.UUID
	items             []Item
	totals            Totals
	status            Status
	createdAt         time.Time

	isConstructed bool
}

// NewOrder creates an order in Pending status from a cart snapshot.
// The items slice must be non-empty and the totals internally consistent.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	foodPlaceID kernel.UUID,
	deliveryAddressID kernel.UUID,
	items []Item,
	totals Totals,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		foodPlaceID.Validate(),
		deliveryAddressID.Validate(),
		totals.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}

	return &Order{
		id:                id,
		customerID:        customerID,
		foodPlaceID:       foodPlaceID,
		deliveryAddressID: deliveryAddressID,
		items:             items,
		totals:            totals,
		status:            Pending,
		createdAt:         time.Now().UTC(),
		isConstructed:     true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-running the
// creation rules. The status must still be a defined lifecycle state.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	foodPlaceID kernel.UUID,
	deliveryAddressID kernel.UUID,
	items []Item,
	totals Totals,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:                id,
		customerID:        customerID,
		foodPlaceID:       foodPlaceID,
		deliveryAddressID: deliveryAddressID,
		items:             items,
		totals:            totals,
		status:            status,
		createdAt:         createdAt,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// FoodPlaceID returns the owning food place's identifier.
func (o *Order) FoodPlaceID() kernel.UUID {
	return o.foodPlaceID
}

// DeliveryAddressID returns the delivery address identifier.
func (o *Order) DeliveryAddressID() kernel.UUID {
	return o.deliveryAddressID
}

// Items returns the order lines.
func (o *Order) Items() []Item {
	return o.items
}

// Totals returns the pricing snapshot.
func (o *Order) Totals() Totals {
	return o.totals
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsOwnedByCustomer reports whether the given customer owns this order.
func (o *Order) IsOwnedByCustomer(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// IsOwnedByFoodPlace reports whether the given food place owns this order.
func (o *Order) IsOwnedByFoodPlace(foodPlaceID kernel.UUID) bool {
	return o.foodPlaceID.IsEqual(foodPlaceID)
}

// RequestConfirmation moves the order from Pending to PendingConfirmation
// when the food place is asked to confirm it.
func (o *Order) RequestConfirmation() error {
	return o.transitionTo(PendingConfirmation)
}

// Confirm moves the order from PendingConfirmation to Preparing after the
// food place accepted it.
func (o *Order) Confirm() error {
	return o.transitionTo(Preparing)
}

// AdvanceTo moves the order forward to target. Cancellation is not an
// advance; use Cancel. Skipping a stage fails with
// InvalidStatusTransitionError.
func (o *Order) AdvanceTo(target Status) error {
	if target == Cancelled {
		return &InvalidStatusTransitionError{From: o.status, To: target}
	}
	return o.transitionTo(target)
}

// Cancel moves the order to Cancelled. Allowed from any state before
// Completed; cancelling a completed or already cancelled order fails.
func (o *Order) Cancel() error {
	return o.transitionTo(Cancelled)
}

// IsExplicitlyCancellable reports whether a customer- or food-place-initiated
// cancellation is still permitted by the order's own state. The caller must
// additionally check the delivery, if one exists, is still unassigned.
func (o *Order) IsExplicitlyCancellable() bool {
	return o.status == PendingConfirmation || o.status == Preparing
}

func (o *Order) transitionTo(target Status) error {
	if err := o.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}
