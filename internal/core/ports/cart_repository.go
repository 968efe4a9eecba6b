package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// Implementations are expected to skip writes when the aggregate reports
// no unpersisted changes.
type CartRepository interface {
	// Add persists a new cart aggregate.
	Add(ctx context.Context, aggregate *cart.Cart) error

	// Update persists changes to an existing cart aggregate. A clean cart
	// is a no-op.
	Update(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves a cart aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)

	// GetActiveByCustomer retrieves the customer's single active cart.
	// Returns an ObjectNotFoundError when the customer has none.
	GetActiveByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)
}
