// Package presence implements the in-memory driver presence registry.
// The registry is the live view of which drivers are connected; it is not
// persisted and rebuilds itself from reconnects after a restart. Accepted
// telemetry is additionally appended to a durable audit trail.
package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Registry tracks connected drivers. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	drivers map[kernel.UUID]*driver.Driver

	history ports.LocationHistoryRepository
	now     func() time.Time
	log     *slog.Logger
}

var _ ports.DriverPresence = (*Registry)(nil)

// NewRegistry creates an empty registry. The history repository receives a
// copy of every accepted telemetry report; pass nil to skip the audit trail.
func NewRegistry(history ports.LocationHistoryRepository, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		drivers: make(map[kernel.UUID]*driver.Driver),
		history: history,
		now:     time.Now,
		log:     log.With("component", "presence.Registry"),
	}
}

// Connect registers a driver as online and available. Reconnecting an
// already connected driver resets the record, dropping any stale active
// delivery marker.
func (r *Registry) Connect(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	record, err := driver.NewDriver(driverID, r.now())
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.drivers[driverID] = record
	r.mu.Unlock()

	r.log.Info("driver connected", "driverId", driverID.String())
	return nil
}

// Disconnect removes a driver from the registry. Disconnecting an unknown
// driver is a no-op.
func (r *Registry) Disconnect(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	_, known := r.drivers[driverID]
	delete(r.drivers, driverID)
	r.mu.Unlock()

	if known {
		r.log.Info("driver disconnected", "driverId", driverID.String())
	}
	return nil
}

// UpsertLocation records a validated telemetry report for a connected
// driver and appends it to the audit trail. Returns an ObjectNotFoundError
// when the driver is not connected.
func (r *Registry) UpsertLocation(driverID kernel.UUID, update driver.LocationUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}

	now := r.now()

	r.mu.Lock()
	record, ok := r.drivers[driverID]
	if !ok {
		r.mu.Unlock()
		return errs.NewObjectNotFoundError("driverId", driverID.String())
	}
	if err := record.RecordLocation(update, now); err != nil {
		r.mu.Unlock()
		return err
	}
	r.mu.Unlock()

	if r.history != nil {
		entry, err := driver.NewLocationHistoryEntry(driverID, update, now)
		if err != nil {
			return err
		}
		if err := r.history.Append(context.Background(), entry); err != nil {
			// The live position is already updated; losing one audit row
			// must not fail the driver's stream.
			r.log.Error("failed to append location history",
				"driverId", driverID.String(), "error", err)
		}
	}
	return nil
}

// SetActiveDelivery marks a connected driver as working a delivery, or
// returns them to the available pool when deliveryID is nil.
func (r *Registry) SetActiveDelivery(driverID kernel.UUID, deliveryID *kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.drivers[driverID]
	if !ok {
		return errs.NewObjectNotFoundError("driverId", driverID.String())
	}

	if deliveryID == nil {
		return record.ClearDelivery()
	}
	return record.AssignDelivery(*deliveryID)
}

// Get returns a detached copy of the presence record for a connected
// driver. The live record never leaves the registry's lock.
func (r *Registry) Get(driverID kernel.UUID) (*driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.drivers[driverID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("driverId", driverID.String())
	}
	return record.Copy(), nil
}

// Snapshot returns detached copies of the presence records of all
// connected drivers.
func (r *Registry) Snapshot() []*driver.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*driver.Driver, 0, len(r.drivers))
	for _, record := range r.drivers {
		result = append(result, record.Copy())
	}
	return result
}

// SweepStale disconnects drivers whose last report is older than the TTL
// and returns the removed records.
func (r *Registry) SweepStale(now time.Time, ttl time.Duration) []*driver.Driver {
	r.mu.Lock()
	defer r.mu.Unlock()

	var swept []*driver.Driver
	for id, record := range r.drivers {
		if record.IsStale(now, ttl) {
			delete(r.drivers, id)
			swept = append(swept, record)
		}
	}

	if len(swept) > 0 {
		r.log.Info("swept stale drivers", "count", len(swept))
	}
	return swept
}
