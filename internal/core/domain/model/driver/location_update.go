package driver

import (
	"errors"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/guard"
)

// Telemetry bounds for a location update. Speed is metres per second,
// 55.56 being roughly 200 km/h.
const (
	AccuracyMaxMeters = 100.0
	SpeedMaxMps       = 55.56
	HeadingMaxDegrees = 360.0
)

// LocationUpdate is a single telemetry report from a driver's device.
// Validation is all or nothing: every field is checked and all violations
// are reported together, so a single bad field rejects the whole update.
type LocationUpdate struct {
	location kernel.Location
	accuracy float64
	speed    float64
	heading  float64

	guard.ConstructorGuard
}

// NewLocationUpdate creates a validated telemetry report. On failure the
// returned error joins one error per invalid field.
func NewLocationUpdate(latitude, longitude, accuracy, speed, heading float64) (LocationUpdate, error) {
	var fieldErrs []error

	location, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if accuracy <= 0 || accuracy > AccuracyMaxMeters {
		fieldErrs = append(fieldErrs,
			errs.NewValueIsOutOfRangeError("accuracy", accuracy, 0, AccuracyMaxMeters))
	}
	if speed < 0 || speed > SpeedMaxMps {
		fieldErrs = append(fieldErrs,
			errs.NewValueIsOutOfRangeError("speed", speed, 0, SpeedMaxMps))
	}
	if heading < 0 || heading >= HeadingMaxDegrees {
		fieldErrs = append(fieldErrs,
			errs.NewValueIsOutOfRangeError("heading", heading, 0, HeadingMaxDegrees))
	}

	if len(fieldErrs) > 0 {
		return LocationUpdate{}, errors.Join(fieldErrs...)
	}

	return LocationUpdate{
		location:         location,
		accuracy:         accuracy,
		speed:            speed,
		heading:          heading,
		ConstructorGuard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the LocationUpdate was created through the constructor.
func (u LocationUpdate) Validate() error {
	return u.ConstructorGuard.Validate(errors.New("LocationUpdate must be created via NewLocationUpdate"))
}

// Location returns the reported position.
func (u LocationUpdate) Location() kernel.Location { return u.location }

// Accuracy returns the device's reported accuracy in metres.
func (u LocationUpdate) Accuracy() float64 { return u.accuracy }

// Speed returns the reported speed in metres per second.
func (u LocationUpdate) Speed() float64 { return u.speed }

// Heading returns the reported heading in degrees, 0 inclusive to 360
// exclusive.
func (u LocationUpdate) Heading() float64 { return u.heading }
