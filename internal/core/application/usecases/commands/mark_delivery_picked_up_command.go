package commands

import (
	"errors"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var ErrMarkDeliveryPickedUpCommandIsNotConstructed = errors.New(
	"MarkDeliveryPickedUpCommand must be created via NewMarkDeliveryPickedUpCommand constructor",
)

// MarkDeliveryPickedUpCommand represents the assigned driver collecting
// the order from the food place.
type MarkDeliveryPickedUpCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveryPickedUpCommand creates a pickup command for the driver.
func NewMarkDeliveryPickedUpCommand(deliveryID, driverID kernel.UUID) (MarkDeliveryPickedUpCommand, error) {
	cmd := MarkDeliveryPickedUpCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
	); err != nil {
		return MarkDeliveryPickedUpCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveryPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveryPickedUpCommandIsNotConstructed)
}

// DeliveryID returns the delivery being picked up.
func (c MarkDeliveryPickedUpCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the acting driver's identifier.
func (c MarkDeliveryPickedUpCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *MarkDeliveryPickedUpCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *MarkDeliveryPickedUpCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
