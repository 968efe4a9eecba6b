package services

import (
	"errors"
	"sort"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// ErrNoCandidates is returned when no eligible driver is within reach of a
// pickup location. This occurs when no drivers are connected, none are
// available, or all available drivers are outside the search radius.
var ErrNoCandidates = errors.New("no candidate drivers found")

// CandidateSelector is a domain service that ranks connected drivers for a
// delivery offer.
//
// Business rules:
//   - Only available drivers with a known location are eligible
//   - Drivers beyond the search radius are excluded
//   - Candidates are ordered by distance to the pickup, nearest first
//   - At most maxCandidates drivers are returned
type CandidateSelector struct {
	radiusKm      float64
	maxCandidates int
}

// NewCandidateSelector creates a selector with the given search radius in
// kilometres and candidate cap. Non-positive arguments fall back to defaults.
func NewCandidateSelector(radiusKm float64, maxCandidates int) CandidateSelector {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	if maxCandidates <= 0 {
		maxCandidates = 10
	}
	return CandidateSelector{radiusKm: radiusKm, maxCandidates: maxCandidates}
}

// Select returns the eligible drivers for a pickup location, nearest first.
//
// Returns ErrNoCandidates when no driver qualifies, and a validation error
// when a driver record was not properly constructed.
func (s CandidateSelector) Select(pickup kernel.Location, drivers []*driver.Driver) ([]*driver.Driver, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	type ranked struct {
		driver     *driver.Driver
		distanceKm float64
	}

	var candidates []ranked
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if !d.IsAvailable() {
			continue
		}

		distance, err := d.Location().DistanceKm(pickup)
		if err != nil {
			return nil, err
		}
		if distance > s.radiusKm {
			continue
		}

		candidates = append(candidates, ranked{driver: d, distanceKm: distance})
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distanceKm < candidates[j].distanceKm
	})

	if len(candidates) > s.maxCandidates {
		candidates = candidates[:s.maxCandidates]
	}

	result := make([]*driver.Driver, len(candidates))
	for i, c := range candidates {
		result[i] = c.driver
	}
	return result, nil
}
