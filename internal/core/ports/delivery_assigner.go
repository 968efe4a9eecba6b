package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// DeliveryAssigner runs the offer/accept workflow that finds a driver for a
// delivery. InitiateAssignment blocks until a driver wins the offer, every
// candidate rejects, or the offer times out. It reports whether a driver
// was assigned; exhausting the candidates is not an error.
type DeliveryAssigner interface {
	InitiateAssignment(ctx context.Context, deliveryID kernel.UUID, pickup kernel.Location) (bool, error)
}
