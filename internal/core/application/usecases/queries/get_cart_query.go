package queries

import (
	"errors"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the customer's active cart. A customer without an
// active cart gets an empty cart view rather than an error: the checkout
// page renders the same either way.
type GetCartQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's active cart.
func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	q := GetCartQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setCustomerID(customerID); err != nil {
		return GetCartQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the requesting customer's identifier.
func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetCartQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	q.customerID = customerID
	return nil
}

// GetCartQueryResponse is the cart read model. A zero-line response with
// zero pricing means the customer has no active cart.
type GetCartQueryResponse struct {
	FoodPlaceID *kernel.UUID
	Items       []CartItemResponse
	Pricing     CartPricingResponse
}

// CartItemResponse is one priced line of the cart.
type CartItemResponse struct {
	ItemID    kernel.UUID
	Quantity  int
	UnitPrice int64
}

// CartPricingResponse is the cart's money breakdown in pence.
type CartPricingResponse struct {
	Subtotal    int64
	ServiceFee  int64
	DeliveryFee int64
	Total       int64
}
