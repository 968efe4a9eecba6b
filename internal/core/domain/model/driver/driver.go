// Package driver contains the driver presence model: the availability and
// last known whereabouts of a connected driver, plus the validated location
// updates drivers stream while online.
package driver

import (
	"errors"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// Status is a driver's availability.
type Status int

const (
	StatusUnknown Status = iota

	// StatusAvailable is a connected driver with no active delivery.
	StatusAvailable

	// StatusDelivering is a connected driver working a delivery.
	StatusDelivering
)

var statusNames = map[Status]string{
	StatusAvailable:  "available",
	StatusDelivering: "delivering",
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ErrDriverIsNotConstructed is returned when a Driver instance was not
// created through NewDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver")

// Driver is a connected driver's presence record. Location is nil until the
// first update arrives.
type Driver struct {
	id               kernel.UUID
	location         *kernel.Location
	status           Status
	activeDeliveryID *kernel.UUID
	lastSeenAt       time.Time

	isConstructed bool
}

// NewDriver creates a presence record for a freshly connected driver.
func NewDriver(id kernel.UUID, now time.Time) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Driver{
		id:            id,
		status:        StatusAvailable,
		lastSeenAt:    now,
		isConstructed: true,
	}, nil
}

// Validate ensures the Driver was created through the constructor.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID { return d.id }

// Location returns the last reported position, or nil if none arrived yet.
func (d *Driver) Location() *kernel.Location { return d.location }

// Status returns the driver's availability.
func (d *Driver) Status() Status { return d.status }

// ActiveDeliveryID returns the delivery the driver is working, or nil.
func (d *Driver) ActiveDeliveryID() *kernel.UUID { return d.activeDeliveryID }

// LastSeenAt returns when the driver last reported in.
func (d *Driver) LastSeenAt() time.Time { return d.lastSeenAt }

// IsAvailable reports whether the driver can receive delivery offers.
func (d *Driver) IsAvailable() bool {
	return d.status == StatusAvailable && d.location != nil
}

// RecordLocation stores a validated location update and refreshes the
// last seen timestamp.
func (d *Driver) RecordLocation(update LocationUpdate, now time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := update.Validate(); err != nil {
		return err
	}

	loc := update.Location()
	d.location = &loc
	d.lastSeenAt = now
	return nil
}

// AssignDelivery marks the driver as working the given delivery.
func (d *Driver) AssignDelivery(deliveryID kernel.UUID) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	d.status = StatusDelivering
	d.activeDeliveryID = &deliveryID
	return nil
}

// ClearDelivery returns the driver to the available pool.
func (d *Driver) ClearDelivery() error {
	if err := d.Validate(); err != nil {
		return err
	}

	d.status = StatusAvailable
	d.activeDeliveryID = nil
	return nil
}

// IsStale reports whether the driver has been silent longer than the TTL.
func (d *Driver) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(d.lastSeenAt) > ttl
}

// Copy returns a detached copy of the record. Later mutations of the
// original do not show through, so the copy can be read without holding
// the owner's lock.
func (d *Driver) Copy() *Driver {
	copied := *d
	if d.location != nil {
		location := *d.location
		copied.location = &location
	}
	if d.activeDeliveryID != nil {
		deliveryID := *d.activeDeliveryID
		copied.activeDeliveryID = &deliveryID
	}
	return &copied
}
