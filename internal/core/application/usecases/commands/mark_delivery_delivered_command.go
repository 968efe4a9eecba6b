package commands

import (
	"errors"
	"strings"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var (
	ErrMarkDeliveryDeliveredCommandIsNotConstructed = errors.New(
		"MarkDeliveryDeliveredCommand must be created via NewMarkDeliveryDeliveredCommand constructor",
	)
	ErrConfirmationCodeIsRequired = errors.New("confirmation code is required")
)

// MarkDeliveryDeliveredCommand represents the assigned driver handing the
// order to the customer, proven by the customer's confirmation code.
type MarkDeliveryDeliveredCommand struct { //nolint:recvcheck //using for validation
	deliveryID       kernel.UUID
	driverID         kernel.UUID
	confirmationCode string

	guard guard.ConstructorGuard
}

// NewMarkDeliveryDeliveredCommand creates a delivered command for the
// driver.
func NewMarkDeliveryDeliveredCommand(deliveryID, driverID kernel.UUID, confirmationCode string) (MarkDeliveryDeliveredCommand, error) {
	cmd := MarkDeliveryDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
		cmd.setConfirmationCode(confirmationCode),
	); err != nil {
		return MarkDeliveryDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveryDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveryDeliveredCommandIsNotConstructed)
}

// DeliveryID returns the delivery being completed.
func (c MarkDeliveryDeliveredCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the acting driver's identifier.
func (c MarkDeliveryDeliveredCommand) DriverID() kernel.UUID {
	return c.driverID
}

// ConfirmationCode returns the code the customer presented.
func (c MarkDeliveryDeliveredCommand) ConfirmationCode() string {
	return c.confirmationCode
}

func (c *MarkDeliveryDeliveredCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *MarkDeliveryDeliveredCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *MarkDeliveryDeliveredCommand) setConfirmationCode(confirmationCode string) error {
	if strings.TrimSpace(confirmationCode) == "" {
		return ErrConfirmationCodeIsRequired
	}

	c.confirmationCode = confirmationCode
	return nil
}
