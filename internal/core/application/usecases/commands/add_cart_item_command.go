package commands

import (
	"errors"
	"fmt"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand represents adding units of a menu item to the
// customer's active cart.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	foodPlaceID kernel.UUID
	itemID      kernel.UUID
	quantity    int
	unitPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add quantity units of a menu
// item, priced at unitPrice pence each, to the customer's cart at the
// given food place.
func NewAddCartItemCommand(
	customerID, foodPlaceID, itemID kernel.UUID,
	quantity int,
	unitPrice kernel.Money,
) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setFoodPlaceID(foodPlaceID),
		cmd.setItemID(itemID),
		cmd.setQuantity(quantity),
		cmd.setUnitPrice(unitPrice),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner's identifier.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// FoodPlaceID returns the food place the item belongs to.
func (c AddCartItemCommand) FoodPlaceID() kernel.UUID {
	return c.foodPlaceID
}

// ItemID returns the menu item to add.
func (c AddCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns how many units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

// UnitPrice returns the unit price in pence.
func (c AddCartItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

func (c *AddCartItemCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AddCartItemCommand) setFoodPlaceID(foodPlaceID kernel.UUID) error {
	if err := foodPlaceID.Validate(); err != nil {
		return err
	}

	c.foodPlaceID = foodPlaceID
	return nil
}

func (c *AddCartItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *AddCartItemCommand) setUnitPrice(unitPrice kernel.Money) error {
	if unitPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is not greater than 0", unitPrice))
	}

	c.unitPrice = unitPrice
	return nil
}
