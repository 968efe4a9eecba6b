// Package cart contains the Cart aggregate: a customer's single active
// basket for one food place. The cart recomputes its pricing on every
// mutation and tracks a dirty flag so unchanged carts are not rewritten.
// Converting the cart into an order invalidates it.
package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Pricing constants, in pence. The service fee is a percentage of the item
// subtotal with a cap; the delivery fee is flat.
const (
	ServiceFeePercent = 10
	ServiceFeeCap     = kernel.Money(199)
	DeliveryFeeFlat   = kernel.Money(349)

	// DefaultTTL is how long a cart stays active after creation.
	DefaultTTL = 24 * time.Hour
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not
	// created through NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")

	// ErrCartAlreadyUsed is returned when mutating a cart whose contents
	// already became an order.
	ErrCartAlreadyUsed = errors.New("cart has already been converted to an order")
)

// Item is a cart line: a menu item, the chosen quantity and the unit price
// looked up when the item was added.
type Item struct {
	itemID    kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// ItemID returns the menu item identifier of this line.
func (i Item) ItemID() kernel.UUID { return i.itemID }

// Quantity returns the chosen quantity.
func (i Item) Quantity() int { return i.quantity }

// UnitPrice returns the unit price in pence.
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() kernel.Money { return i.unitPrice.MultiplyBy(i.quantity) }

// RestoreItem reconstructs a cart line from persistence.
func RestoreItem(itemID kernel.UUID, quantity int, unitPrice kernel.Money) Item {
	return Item{itemID: itemID, quantity: quantity, unitPrice: unitPrice}
}

// Pricing is the cart's recomputed price breakdown.
type Pricing struct {
	Subtotal    kernel.Money
	ServiceFee  kernel.Money
	DeliveryFee kernel.Money
	Total       kernel.Money
}

// Cart is the aggregate for a customer's active basket.
//
// Invariants:
//   - at most one line per menu item; quantities are always positive
//   - pricing always reflects the current lines
//   - a used cart rejects further mutation
type Cart struct {
	id          kernel.UUID
	customerID  kernel.UUID
	foodPlaceID kernel.UUID
	items       []Item
	pricing     Pricing
	expiresAt   time.Time
	used        bool

	dirty         bool
	isConstructed bool
}

// NewCart creates an empty active cart for the customer and food place.
func NewCart(id, customerID, foodPlaceID kernel.UUID, ttl time.Duration) (*Cart, error) {
	if err := errors.Join(id.Validate(), customerID.Validate(), foodPlaceID.Validate()); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cart{
		id:            id,
		customerID:    customerID,
		foodPlaceID:   foodPlaceID,
		items:         nil,
		expiresAt:     time.Now().UTC().Add(ttl),
		dirty:         true,
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence with the dirty flag unset.
func RestoreCart(
	id, customerID, foodPlaceID kernel.UUID,
	items []Item,
	expiresAt time.Time,
	used bool,
) (*Cart, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}

	c := &Cart{
		id:            id,
		customerID:    customerID,
		foodPlaceID:   foodPlaceID,
		items:         items,
		expiresAt:     expiresAt,
		used:          used,
		isConstructed: true,
	}
	c.recomputePricing()
	c.dirty = false
	return c, nil
}

// Validate ensures the Cart was created through a constructor.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// ID returns the cart's unique identifier.
func (c *Cart) ID() kernel.UUID { return c.id }

// CustomerID returns the owning customer's identifier.
func (c *Cart) CustomerID() kernel.UUID { return c.customerID }

// FoodPlaceID returns the food place this cart orders from.
func (c *Cart) FoodPlaceID() kernel.UUID { return c.foodPlaceID }

// Items returns the cart lines.
func (c *Cart) Items() []Item { return c.items }

// Pricing returns the current price breakdown.
func (c *Cart) Pricing() Pricing { return c.pricing }

// ExpiresAt returns when the cart stops being active.
func (c *Cart) ExpiresAt() time.Time { return c.expiresAt }

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// IsUsed reports whether the cart's contents already became an order.
func (c *Cart) IsUsed() bool { return c.used }

// IsDirty reports whether the cart has unpersisted changes. Repositories
// skip the write when unset.
func (c *Cart) IsDirty() bool { return c.dirty }

// MarkClean clears the dirty flag after a successful persist.
func (c *Cart) MarkClean() { c.dirty = false }

// AddItem adds quantity units of a menu item. An existing line for the same
// item grows by quantity and takes the latest unit price.
func (c *Cart) AddItem(itemID kernel.UUID, quantity int, unitPrice kernel.Money) error {
	if err := c.mutable(); err != nil {
		return err
	}
	if err := itemID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return errs.NewValueIsInvalidError("unitPrice")
	}

	for i := range c.items {
		if c.items[i].itemID.IsEqual(itemID) {
			c.items[i].quantity += quantity
			c.items[i].unitPrice = unitPrice
			c.recomputePricing()
			c.dirty = true
			return nil
		}
	}

	c.items = append(c.items, Item{itemID: itemID, quantity: quantity, unitPrice: unitPrice})
	c.recomputePricing()
	c.dirty = true
	return nil
}

// RemoveItem removes the whole line for a menu item.
// Returns an ObjectNotFoundError when the cart has no such line.
func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	if err := c.mutable(); err != nil {
		return err
	}
	if err := itemID.Validate(); err != nil {
		return err
	}

	for i := range c.items {
		if c.items[i].itemID.IsEqual(itemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.recomputePricing()
			c.dirty = true
			return nil
		}
	}

	return errs.NewObjectNotFoundError("cartItem", itemID.String())
}

// UpdateQuantity sets the quantity of an existing line. Zero removes the
// line; a quantity equal to the current one is a no-op and leaves the dirty
// flag untouched. Negative quantities are invalid.
func (c *Cart) UpdateQuantity(itemID kernel.UUID, quantity int) error {
	if err := c.mutable(); err != nil {
		return err
	}
	if err := itemID.Validate(); err != nil {
		return err
	}
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	if quantity == 0 {
		return c.RemoveItem(itemID)
	}

	for i := range c.items {
		if c.items[i].itemID.IsEqual(itemID) {
			if c.items[i].quantity == quantity {
				return nil
			}
			c.items[i].quantity = quantity
			c.recomputePricing()
			c.dirty = true
			return nil
		}
	}

	return errs.NewObjectNotFoundError("cartItem", itemID.String())
}

// MarkUsed invalidates the cart after its contents became an order: lines
// are cleared and further mutation is rejected.
func (c *Cart) MarkUsed() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.used {
		return ErrCartAlreadyUsed
	}

	c.items = nil
	c.used = true
	c.recomputePricing()
	c.dirty = true
	return nil
}

// IsActive reports whether the cart can still be mutated and converted:
// not used and not expired.
func (c *Cart) IsActive(now time.Time) bool {
	return !c.used && now.Before(c.expiresAt)
}

func (c *Cart) mutable() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.used {
		return ErrCartAlreadyUsed
	}
	return nil
}

// recomputePricing rebuilds the price breakdown from the current lines.
// An empty cart prices to zero, fees included.
func (c *Cart) recomputePricing() {
	var subtotal kernel.Money
	for _, item := range c.items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	if subtotal == 0 {
		c.pricing = Pricing{}
		return
	}

	serviceFee := subtotal * ServiceFeePercent / 100
	if serviceFee > ServiceFeeCap {
		serviceFee = ServiceFeeCap
	}

	c.pricing = Pricing{
		Subtotal:    subtotal,
		ServiceFee:  serviceFee,
		DeliveryFee: DeliveryFeeFlat,
		Total:       subtotal.Add(serviceFee).Add(DeliveryFeeFlat),
	}
}
