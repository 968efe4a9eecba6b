// Package orderrepo persists the order aggregate. It maps the aggregate to
// an orders row plus one order_items row per line and restores it through
// the domain constructors.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Money columns hold pence.
type OrderDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID      `gorm:"type:uuid;index"`
	FoodPlaceID       uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryAddressID uuid.UUID      `gorm:"type:uuid"`
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Subtotal          int64
	ServiceFee        int64
	DeliveryFee       int64
	Total             int64
	Status            int `gorm:"index"`
	CreatedAt         time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one priced line of an order. Lines are immutable
// once the order exists.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	UnitPrice int64
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ItemID:    item.ItemID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Pence(),
		})
	}

	totals := aggregate.Totals()
	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		FoodPlaceID:       aggregate.FoodPlaceID().Bytes(),
		DeliveryAddressID: aggregate.DeliveryAddressID().Bytes(),
		Items:             items,
		Subtotal:          totals.Subtotal.Pence(),
		ServiceFee:        totals.ServiceFee.Pence(),
		DeliveryFee:       totals.DeliveryFee.Pence(),
		Total:             totals.Total.Pence(),
		Status:            int(aggregate.Status()),
		CreatedAt:         aggregate.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	foodPlaceID, err := kernel.UUIDFromBytes(dto.FoodPlaceID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.DeliveryAddressID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(itemID, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	totals, err := totalsFromDTO(dto)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, foodPlaceID, addressID,
		items, totals, order.Status(dto.Status), dto.CreatedAt)
}

func totalsFromDTO(dto OrderDTO) (order.Totals, error) {
	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return order.Totals{}, err
	}
	serviceFee, err := kernel.NewMoney(dto.ServiceFee)
	if err != nil {
		return order.Totals{}, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return order.Totals{}, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return order.Totals{}, err
	}

	return order.Totals{
		Subtotal:    subtotal,
		ServiceFee:  serviceFee,
		DeliveryFee: deliveryFee,
		Total:       total,
	}, nil
}
