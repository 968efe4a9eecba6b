// Package historyrepo persists the driver location audit trail. Appends
// run on the plain connection, outside any unit of work: losing one sample
// must never roll back a business transaction.
package historyrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
)

// LocationHistoryDTO represents one recorded driver location sample.
type LocationHistoryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	DriverID   uuid.UUID `gorm:"type:uuid;index:idx_history_driver_time"`
	Latitude   float64
	Longitude  float64
	Accuracy   float64
	Speed      float64
	Heading    float64
	RecordedAt time.Time `gorm:"index:idx_history_driver_time"`
}

// TableName overrides GORM's default naming to use "driver_location_history".
func (LocationHistoryDTO) TableName() string {
	return "driver_location_history"
}

// GormLocationHistoryRepository implements LocationHistoryRepository using
// GORM.
type GormLocationHistoryRepository struct {
	db *gorm.DB
}

// NewGormLocationHistoryRepository creates a new GORM location history
// repository.
func NewGormLocationHistoryRepository(db *gorm.DB) *GormLocationHistoryRepository {
	return &GormLocationHistoryRepository{db: db}
}

// Append records one location sample.
func (r *GormLocationHistoryRepository) Append(ctx context.Context, entry driver.LocationHistoryEntry) error {
	dto := LocationHistoryDTO{
		DriverID:   entry.DriverID.Bytes(),
		Latitude:   entry.Location.Latitude(),
		Longitude:  entry.Location.Longitude(),
		Accuracy:   entry.Accuracy,
		Speed:      entry.Speed,
		Heading:    entry.Heading,
		RecordedAt: entry.RecordedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
