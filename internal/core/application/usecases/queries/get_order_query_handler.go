package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// GetOrderQueryHandler reads an order straight from the database, joining
// the payment record and the delivery when one exists. Reads bypass the
// aggregates so the view stays cheap.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the order
// does not exist or belongs to another customer.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			o.subtotal,
			o.service_fee,
			o.delivery_fee,
			o.total,
			o.created_at,
			p.status,
			d.id,
			d.status,
			d.driver_id
		FROM orders o
		JOIN payments p ON p.order_id = o.id
		LEFT JOIN deliveries d ON d.order_id = o.id
		WHERE o.id = ? AND o.customer_id = ?
	`, query.OrderID().Bytes(), query.CustomerID().Bytes()).Row()

	var (
		id            uuid.UUID
		orderStatus   int
		totals        OrderTotalsResponse
		createdAt     sql.NullTime
		paymentStatus int
		deliveryID    *uuid.UUID
		deliverySt    sql.NullInt64
		driverID      *uuid.UUID
	)

	err := row.Scan(
		&id, &orderStatus,
		&totals.Subtotal, &totals.ServiceFee, &totals.DeliveryFee, &totals.Total,
		&createdAt, &paymentStatus,
		&deliveryID, &deliverySt, &driverID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:            orderID,
		Status:        order.Status(orderStatus).String(),
		PaymentStatus: payment.Status(paymentStatus).String(),
		Totals:        totals,
		CreatedAt:     createdAt.Time,
	}

	if deliveryID != nil && deliverySt.Valid {
		dID, idErr := kernel.UUIDFromBytes((*deliveryID)[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		deliveryResp := &OrderDeliveryResponse{
			ID:     dID,
			Status: delivery.Status(deliverySt.Int64).String(),
		}
		if driverID != nil {
			drvID, drvErr := kernel.UUIDFromBytes((*driverID)[:])
			if drvErr != nil {
				return GetOrderQueryResponse{}, drvErr
			}
			deliveryResp.DriverID = &drvID
		}
		resp.Delivery = deliveryResp
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT item_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY item_id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			itemID uuid.UUID
			item   OrderItemResponse
		)
		if err = rows.Scan(&itemID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(itemID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ItemID = id
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
