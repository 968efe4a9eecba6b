package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/address"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// AddressRepository defines the persistence contract for delivery addresses.
type AddressRepository interface {
	// Add persists a new address.
	Add(ctx context.Context, aggregate *address.Address) error

	// Get retrieves an address by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)
}
