// Package deliveryrepo persists the delivery aggregate. Driver assignment
// goes through a conditional update so two drivers can never win the same
// delivery.
package deliveryrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. One order has at most one delivery.
type DeliveryDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	AddressID        uuid.UUID  `gorm:"type:uuid"`
	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	Status           int        `gorm:"index"`
	ConfirmationCode string
	CreatedAt        time.Time
	AssignedAt       *time.Time
}

// TableName overrides GORM's default naming to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return DeliveryDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		AddressID:        aggregate.AddressID().Bytes(),
		DriverID:         driverID,
		Status:           int(aggregate.Status()),
		ConfirmationCode: aggregate.ConfirmationCode(),
		CreatedAt:        aggregate.CreatedAt(),
		AssignedAt:       aggregate.AssignedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	return delivery.RestoreDelivery(
		id, orderID, addressID, driverID,
		delivery.Status(dto.Status), dto.ConfirmationCode,
		dto.CreatedAt, dto.AssignedAt)
}
