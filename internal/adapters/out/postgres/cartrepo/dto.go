// Package cartrepo persists the cart aggregate. Cart lines live in a
// jsonb column since they are only ever read and written together.
package cartrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// LinesJSON is a jsonb column holding the cart's lines.
type LinesJSON []byte

// GormDataType maps the column to jsonb.
func (LinesJSON) GormDataType() string {
	return "jsonb"
}

// Value implements driver.Valuer.
func (l LinesJSON) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return string(l), nil
}

// Scan implements sql.Scanner.
func (l *LinesJSON) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		*l = append((*l)[0:0], v...)
	case string:
		*l = LinesJSON(v)
	case nil:
		*l = nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

// lineRecord is the jsonb format of one cart line. The cart read model
// parses the same shape.
type lineRecord struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// CartDTO represents the database structure for persisting cart
// aggregates. Pricing columns hold pence and are denormalized for the
// cart read model.
type CartDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	FoodPlaceID uuid.UUID `gorm:"type:uuid"`
	Items       LinesJSON
	Subtotal    int64
	ServiceFee  int64
	DeliveryFee int64
	Total       int64
	ExpiresAt   time.Time `gorm:"index"`
	Used        bool
}

// TableName overrides GORM's default naming to use "carts".
func (CartDTO) TableName() string {
	return "carts"
}

func fromDomain(aggregate *cart.Cart) (CartDTO, error) {
	records := make([]lineRecord, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		records = append(records, lineRecord{
			ItemID:    item.ItemID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Pence(),
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return CartDTO{}, err
	}

	pricing := aggregate.Pricing()
	return CartDTO{
		ID:          aggregate.ID().Bytes(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		FoodPlaceID: aggregate.FoodPlaceID().Bytes(),
		Items:       LinesJSON(raw),
		Subtotal:    pricing.Subtotal.Pence(),
		ServiceFee:  pricing.ServiceFee.Pence(),
		DeliveryFee: pricing.DeliveryFee.Pence(),
		Total:       pricing.Total.Pence(),
		ExpiresAt:   aggregate.ExpiresAt(),
		Used:        aggregate.IsUsed(),
	}, nil
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
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

	var records []lineRecord
	if len(dto.Items) > 0 {
		if err = json.Unmarshal(dto.Items, &records); err != nil {
			return nil, err
		}
	}

	items := make([]cart.Item, 0, len(records))
	for _, record := range records {
		itemID, itemErr := kernel.UUIDFromString(record.ItemID)
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(record.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, cart.RestoreItem(itemID, record.Quantity, unitPrice))
	}

	return cart.RestoreCart(id, customerID, foodPlaceID, items, dto.ExpiresAt, dto.Used)
}
