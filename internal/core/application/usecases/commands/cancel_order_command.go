package commands

import (
	"errors"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via a NewCancelOrderCommand constructor",
)

// CancelActor identifies who asked for the cancellation.
type CancelActor int

const (
	CancelActorUnknown CancelActor = iota
	CancelActorCustomer
	CancelActorFoodPlace
)

// CancelOrderCommand represents a request to cancel an order, either by
// the customer who placed it or by the food place preparing it.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	requesterID kernel.UUID
	actor       CancelActor

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order on behalf of
// the given customer.
func NewCancelOrderCommand(orderID, customerID kernel.UUID) (CancelOrderCommand, error) {
	return newCancelOrderCommand(orderID, customerID, CancelActorCustomer)
}

// NewCancelOrderCommandByFoodPlace creates a command to cancel an order on
// behalf of the food place it was placed with.
func NewCancelOrderCommandByFoodPlace(orderID, foodPlaceID kernel.UUID) (CancelOrderCommand, error) {
	return newCancelOrderCommand(orderID, foodPlaceID, CancelActorFoodPlace)
}

func newCancelOrderCommand(orderID, requesterID kernel.UUID, actor CancelActor) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequesterID(requesterID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequesterID returns the identifier of whoever asked for the
// cancellation, a customer or a food place depending on Actor.
func (c CancelOrderCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Actor returns who asked for the cancellation.
func (c CancelOrderCommand) Actor() CancelActor {
	return c.actor
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}
