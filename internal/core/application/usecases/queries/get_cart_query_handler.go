package queries

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
)

// GetCartQueryHandler reads the customer's active cart straight from the
// database. Cart lines live in a jsonb column, so one row is enough.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart reads.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// cartLineRecord mirrors the jsonb line format written by the cart
// repository.
type cartLineRecord struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// Handle executes the query. A customer without an active cart gets an
// empty response, never an error.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			food_place_id,
			items,
			subtotal,
			service_fee,
			delivery_fee,
			total
		FROM carts
		WHERE customer_id = ? AND used = false AND expires_at > now()
		ORDER BY expires_at DESC
		LIMIT 1
	`, query.CustomerID().Bytes()).Row()

	var (
		foodPlaceID uuid.UUID
		rawItems    []byte
		pricing     CartPricingResponse
	)

	err := row.Scan(
		&foodPlaceID, &rawItems,
		&pricing.Subtotal, &pricing.ServiceFee, &pricing.DeliveryFee, &pricing.Total,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetCartQueryResponse{Items: []CartItemResponse{}}, nil
		}
		return GetCartQueryResponse{}, err
	}

	fpID, err := kernel.UUIDFromBytes(foodPlaceID[:])
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	var records []cartLineRecord
	if len(rawItems) > 0 {
		if err = json.Unmarshal(rawItems, &records); err != nil {
			return GetCartQueryResponse{}, err
		}
	}

	items := make([]CartItemResponse, 0, len(records))
	for _, record := range records {
		itemID, idErr := kernel.UUIDFromString(record.ItemID)
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}
		items = append(items, CartItemResponse{
			ItemID:    itemID,
			Quantity:  record.Quantity,
			UnitPrice: record.UnitPrice,
		})
	}

	return GetCartQueryResponse{
		FoodPlaceID: &fpID,
		Items:       items,
		Pricing:     pricing,
	}, nil
}
