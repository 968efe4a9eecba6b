package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery created for an order, if any.
	// Returns an ObjectNotFoundError when the order has no delivery yet.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// AssignDriver atomically claims the delivery for a driver. The write
	// succeeds only while no driver is assigned; concurrent claims resolve
	// to exactly one winner. Returns (false, nil) when another driver got
	// there first.
	AssignDriver(ctx context.Context, deliveryID, driverID kernel.UUID) (bool, error)
}
