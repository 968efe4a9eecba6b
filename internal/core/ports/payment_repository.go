package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
// Payments are keyed by the order they pay for.
type PaymentRepository interface {
	// Add persists a new payment record.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment record.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// GetByOrderID retrieves the payment record for an order.
	// Returns an ObjectNotFoundError when no such payment exists.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
