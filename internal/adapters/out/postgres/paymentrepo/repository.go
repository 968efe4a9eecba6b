// Package paymentrepo persists payment records. A payment is keyed by its
// order, one intent per order.
package paymentrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// PaymentDTO represents the database structure for persisting payment
// records. Amount holds pence.
type PaymentDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	IntentID string    `gorm:"uniqueIndex"`
	Status   int
	Amount   int64
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(record *payment.Payment) PaymentDTO {
	return PaymentDTO{
		OrderID:  record.OrderID().Bytes(),
		IntentID: record.IntentID(),
		Status:   int(record.Status()),
		Amount:   record.Amount().Pence(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(orderID, dto.IntentID, payment.Status(dto.Status), amount)
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new payment record to the database.
func (r *GormPaymentRepository) Add(ctx context.Context, record *payment.Payment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

// Update saves an existing payment record. Only the status moves after
// creation.
func (r *GormPaymentRepository) Update(ctx context.Context, record *payment.Payment) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&PaymentDTO{}).
		Where("order_id = ?", record.OrderID().Bytes()).
		Update("status", int(record.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", record.OrderID().String())
	}

	r.tracker.TrackAggregate(record.OrderID(), record)
	return nil
}

// GetByOrderID retrieves the payment record for an order.
func (r *GormPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
