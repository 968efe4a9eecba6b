package commands

import (
	"errors"
	"strings"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressLineIsRequired = errors.New("address line is required")
	ErrPostcodeIsRequired    = errors.New("postcode is required")
)

// CreateOrderCommand represents a request to turn a customer's active cart
// into an order delivered to the given address.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, "221B Baker Street", "NW1 6XE", 51.52, -0.15)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	addressLine string
	postcode    string
	location    kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order from the
// customer's active cart. The delivery coordinates must lie inside the
// service area.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	addressLine, postcode string,
	latitude, longitude float64,
) (CreateOrderCommand, error) {
	location, locationErr := kernel.NewLocation(latitude, longitude)

	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		locationErr,
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setAddressLine(addressLine),
		cmd.setPostcode(postcode),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.location = location
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will get.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// AddressLine returns the delivery street line.
func (c CreateOrderCommand) AddressLine() string {
	return c.addressLine
}

// Postcode returns the delivery postcode.
func (c CreateOrderCommand) Postcode() string {
	return c.postcode
}

// Location returns the delivery coordinates.
func (c CreateOrderCommand) Location() kernel.Location {
	return c.location
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setAddressLine(addressLine string) error {
	if strings.TrimSpace(addressLine) == "" {
		return ErrAddressLineIsRequired
	}

	c.addressLine = addressLine
	return nil
}

func (c *CreateOrderCommand) setPostcode(postcode string) error {
	if strings.TrimSpace(postcode) == "" {
		return ErrPostcodeIsRequired
	}

	c.postcode = postcode
	return nil
}
