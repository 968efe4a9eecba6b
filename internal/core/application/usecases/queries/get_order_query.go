package queries

import (
	"errors"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its payment and delivery state.
// The query is scoped to the requesting customer: another customer's order
// is reported as not found.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, customerID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one of the customer's orders.
func NewGetOrderQuery(orderID, customerID kernel.UUID) (GetOrderQuery, error) {
	q := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setOrderID(orderID),
		q.setCustomerID(customerID),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// CustomerID returns the requesting customer's identifier.
func (q GetOrderQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	q.customerID = customerID
	return nil
}

// GetOrderQueryResponse is the order read model: lifecycle status, money
// breakdown, payment state and, once one exists, the delivery.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Status        string
	PaymentStatus string
	Totals        OrderTotalsResponse
	Items         []OrderItemResponse
	Delivery      *OrderDeliveryResponse
	CreatedAt     time.Time
}

// OrderTotalsResponse is the money breakdown in pence.
type OrderTotalsResponse struct {
	Subtotal    int64
	ServiceFee  int64
	DeliveryFee int64
	Total       int64
}

// OrderItemResponse is one priced line of the order.
type OrderItemResponse struct {
	ItemID    kernel.UUID
	Quantity  int
	UnitPrice int64
}

// OrderDeliveryResponse is the delivery leg of the order. DriverID is nil
// until a driver wins the assignment.
type OrderDeliveryResponse struct {
	ID       kernel.UUID
	Status   string
	DriverID *kernel.UUID
}
