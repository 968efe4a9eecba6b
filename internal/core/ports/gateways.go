package ports

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// ConfirmationGateway asks a food place to accept or reject a new order.
// The call blocks until the food place answers or the gateway's timeout
// elapses; a timeout counts as a rejection.
type ConfirmationGateway interface {
	RequestConfirmation(ctx context.Context, orderID, foodPlaceID kernel.UUID) (bool, error)
}

// PaymentGateway is the external payment provider. The wire protocol is
// opaque to the core; intents are referenced by the provider's intent ID.
// Implementations must not retry internally, callers own retry policy.
type PaymentGateway interface {
	// CreateIntent reserves the amount and returns the provider's intent ID.
	CreateIntent(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (string, error)

	// Capture settles a previously created intent.
	Capture(ctx context.Context, intentID string) error

	// Cancel voids a previously created intent.
	Cancel(ctx context.Context, intentID string) error
}

// FoodPlaceDirectory resolves food place details kept by the partner
// catalogue service. Only the pickup location is needed here.
type FoodPlaceDirectory interface {
	GetLocation(ctx context.Context, foodPlaceID kernel.UUID) (kernel.Location, error)
}

// Notification is a single realtime event pushed to a connected party.
type Notification struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// RealtimeNotifier pushes events to connected drivers, customers and food
// places. Delivery is best effort; a disconnected recipient is not an error.
type RealtimeNotifier interface {
	NotifyDriver(ctx context.Context, driverID kernel.UUID, n Notification) error
	NotifyCustomer(ctx context.Context, customerID kernel.UUID, n Notification) error
	NotifyFoodPlace(ctx context.Context, foodPlaceID kernel.UUID, n Notification) error

	// BroadcastToDrivers fans one event out to several drivers.
	BroadcastToDrivers(ctx context.Context, driverIDs []kernel.UUID, n Notification) error
}
