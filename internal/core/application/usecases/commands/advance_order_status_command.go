package commands

import (
	"errors"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand represents a food place moving one of its
// orders forward in the preparation chain.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	foodPlaceID kernel.UUID
	target      order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceOrderStatusCommand creates a command to advance an order to the
// target status on behalf of the food place.
func NewAdvanceOrderStatusCommand(orderID, foodPlaceID kernel.UUID, target order.Status) (AdvanceOrderStatusCommand, error) {
	cmd := AdvanceOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setFoodPlaceID(foodPlaceID),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FoodPlaceID returns the acting food place's identifier.
func (c AdvanceOrderStatusCommand) FoodPlaceID() kernel.UUID {
	return c.foodPlaceID
}

// Target returns the requested status.
func (c AdvanceOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *AdvanceOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderStatusCommand) setFoodPlaceID(foodPlaceID kernel.UUID) error {
	if err := foodPlaceID.Validate(); err != nil {
		return err
	}

	c.foodPlaceID = foodPlaceID
	return nil
}

func (c *AdvanceOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
