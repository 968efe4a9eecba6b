package ports

import (
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// DriverPresence tracks which drivers are currently connected, where they
// are and whether they carry an active delivery. The registry is in-memory
// and rebuilt from reconnects after a restart, so the methods take no
// context.
//
// Operations on a driver that is not connected return an
// ObjectNotFoundError.
type DriverPresence interface {
	// Connect registers a driver as online and available.
	// Reconnecting an already connected driver refreshes the record.
	Connect(driverID kernel.UUID) error

	// Disconnect removes a driver from the registry.
	Disconnect(driverID kernel.UUID) error

	// UpsertLocation stores a validated telemetry report.
	UpsertLocation(driverID kernel.UUID, update driver.LocationUpdate) error

	// SetActiveDelivery marks the driver as working a delivery, or clears
	// it when deliveryID is nil.
	SetActiveDelivery(driverID kernel.UUID, deliveryID *kernel.UUID) error

	// Get returns the presence record for a connected driver.
	Get(driverID kernel.UUID) (*driver.Driver, error)

	// Snapshot returns the presence records of all connected drivers.
	Snapshot() []*driver.Driver

	// SweepStale disconnects drivers that have been silent longer than the
	// TTL and returns them.
	SweepStale(now time.Time, ttl time.Duration) []*driver.Driver
}
