package driver

import (
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// LocationHistoryEntry is an accepted telemetry report as persisted to the
// driver location audit trail. Entries are append only.
type LocationHistoryEntry struct {
	DriverID   kernel.UUID
	Location   kernel.Location
	Accuracy   float64
	Speed      float64
	Heading    float64
	RecordedAt time.Time
}

// NewLocationHistoryEntry builds an audit trail entry from a validated
// update.
func NewLocationHistoryEntry(driverID kernel.UUID, update LocationUpdate, recordedAt time.Time) (LocationHistoryEntry, error) {
	if err := driverID.Validate(); err != nil {
		return LocationHistoryEntry{}, err
	}
	if err := update.Validate(); err != nil {
		return LocationHistoryEntry{}, err
	}

	return LocationHistoryEntry{
		DriverID:   driverID,
		Location:   update.Location(),
		Accuracy:   update.Accuracy(),
		Speed:      update.Speed(),
		Heading:    update.Heading(),
		RecordedAt: recordedAt,
	}, nil
}
