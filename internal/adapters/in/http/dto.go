package http

// Request and response bodies for the public API. The wire types are kept
// apart from the domain so the JSON contract can evolve on its own.

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest places an order from the customer's active cart.
type CreateOrderRequest struct {
	AddressLine string  `json:"addressLine"`
	Postcode    string  `json:"postcode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CreateOrderResponse returns the identifier of the accepted order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// OrderResponse is the order read model on the wire.
type OrderResponse struct {
	OrderID       string                 `json:"orderId"`
	Status        string                 `json:"status"`
	PaymentStatus string                 `json:"paymentStatus"`
	Totals        TotalsResponse         `json:"totals"`
	Items         []OrderItemResponse    `json:"items"`
	Delivery      *OrderDeliveryResponse `json:"delivery,omitempty"`
	CreatedAt     string                 `json:"createdAt"`
}

// TotalsResponse is a money breakdown in pence.
type TotalsResponse struct {
	Subtotal    int64 `json:"subtotal"`
	ServiceFee  int64 `json:"serviceFee"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

// OrderItemResponse is one priced order line on the wire.
type OrderItemResponse struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// OrderDeliveryResponse is the delivery leg of an order on the wire.
type OrderDeliveryResponse struct {
	DeliveryID string  `json:"deliveryId"`
	Status     string  `json:"status"`
	DriverID   *string `json:"driverId,omitempty"`
}

// AdvanceOrderStatusRequest moves an order forward on behalf of a food
// place.
type AdvanceOrderStatusRequest struct {
	FoodPlaceID string `json:"foodPlaceId"`
	Status      string `json:"status"`
}

// AddCartItemRequest adds quantity units of a menu item to the cart.
type AddCartItemRequest struct {
	FoodPlaceID string `json:"foodPlaceId"`
	ItemID      string `json:"itemId"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// UpdateCartItemQuantityRequest sets a cart line's quantity. Zero removes
// the line.
type UpdateCartItemQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the cart read model on the wire.
type CartResponse struct {
	FoodPlaceID *string            `json:"foodPlaceId,omitempty"`
	Items       []CartItemResponse `json:"items"`
	Pricing     TotalsResponse     `json:"pricing"`
}

// CartItemResponse is one priced cart line on the wire.
type CartItemResponse struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// ConfirmOrderRequest is the food place's answer to a confirmation request.
type ConfirmOrderRequest struct {
	Accepted bool `json:"accepted"`
}

// DriverLocationRequest is one telemetry report from a driver's device.
type DriverLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Speed     float64 `json:"speed"`
	Heading   float64 `json:"heading"`
}

// AcceptOfferResponse reports whether the accepting driver won the
// delivery.
type AcceptOfferResponse struct {
	Won bool `json:"won"`
}

// MarkDeliveredRequest carries the confirmation code the customer handed
// the driver.
type MarkDeliveredRequest struct {
	ConfirmationCode string `json:"confirmationCode"`
}
