package order

import (
	"fmt"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Item is an immutable line of an order: a menu item reference, the quantity
// ordered and the unit price snapshotted from the cart at creation time.
// Snapshotting keeps the order's pricing stable when the menu changes later.
type Item struct {
	itemID    kernel.UUID
	quantity  int
	unitPrice kernel.Money
}

// NewItem creates an order line. Quantity must be positive and the unit
// price non-negative.
func NewItem(itemID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := itemID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice < 0 {
		return Item{}, errs.NewValueIsInvalidError("unitPrice")
	}

	return Item{
		itemID:    itemID,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ItemID returns the referenced menu item's identifier.
func (i Item) ItemID() kernel.UUID {
	return i.itemID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the snapshotted unit price.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MultiplyBy(i.quantity)
}

// Totals holds the pricing snapshot taken from the cart when the order was
// created. Total is subtotal plus fees; the consistency is validated on
// order construction.
type Totals struct {
	Subtotal    kernel.Money
	ServiceFee  kernel.Money
	DeliveryFee kernel.Money
	Total       kernel.Money
}

// Validate checks the totals are non-negative and internally consistent.
func (t Totals) Validate() error {
	for name, amount := range map[string]kernel.Money{
		"subtotal":    t.Subtotal,
		"serviceFee":  t.ServiceFee,
		"deliveryFee": t.DeliveryFee,
		"total":       t.Total,
	} {
		if amount < 0 {
			return errs.NewValueIsInvalidError(name)
		}
	}

	if t.Subtotal.Add(t.ServiceFee).Add(t.DeliveryFee) != t.Total {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d does not equal subtotal + fees", t.Total))
	}
	return nil
}
