// Package http exposes the customer, food place and driver REST API over
// echo. The caller's identity arrives in the X-Customer-Id, X-Food-Place-Id
// or X-Driver-Id header; a production deployment would put an auth
// middleware in front and fill them from the session.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/assignment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/queries"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// Identity headers.
const (
	CustomerHeader  = "X-Customer-Id"
	FoodPlaceHeader = "X-Food-Place-Id"
	DriverHeader    = "X-Driver-Id"
)

// ConfirmationAnswerer receives food place answers to pending order
// confirmation requests.
type ConfirmationAnswerer interface {
	Answer(orderID, foodPlaceID kernel.UUID, accepted bool) error
}

// DriverChannel is the inbound driver gateway the driver routes call.
type DriverChannel interface {
	Connect(driverID kernel.UUID) error
	Disconnect(driverID kernel.UUID) error
	UpdateLocation(driverID kernel.UUID, latitude, longitude, accuracy, speed, heading float64) error
	AcceptOffer(ctx context.Context, deliveryID, driverID kernel.UUID) (bool, error)
	RejectOffer(deliveryID, driverID kernel.UUID) error
	MarkPickedUp(ctx context.Context, deliveryID, driverID kernel.UUID) error
	MarkDelivered(ctx context.Context, deliveryID, driverID kernel.UUID, confirmationCode string) error
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrder        commands.CreateOrderCommandHandler
	cancelOrder        commands.CancelOrderCommandHandler
	advanceOrderStatus commands.AdvanceOrderStatusCommandHandler
	addCartItem        commands.AddCartItemCommandHandler
	removeCartItem     commands.RemoveCartItemCommandHandler
	updateCartItem     commands.UpdateCartItemQuantityCommandHandler

	getOrder queries.GetOrderQueryHandler
	getCart  queries.GetCartQueryHandler

	confirmations ConfirmationAnswerer
	drivers       DriverChannel
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	advanceOrderStatus commands.AdvanceOrderStatusCommandHandler,
	addCartItem commands.AddCartItemCommandHandler,
	removeCartItem commands.RemoveCartItemCommandHandler,
	updateCartItem commands.UpdateCartItemQuantityCommandHandler,
	getOrder queries.GetOrderQueryHandler,
	getCart queries.GetCartQueryHandler,
	confirmations ConfirmationAnswerer,
	drivers DriverChannel,
) *Server {
	return &Server{
		createOrder:        createOrder,
		cancelOrder:        cancelOrder,
		advanceOrderStatus: advanceOrderStatus,
		addCartItem:        addCartItem,
		removeCartItem:     removeCartItem,
		updateCartItem:     updateCartItem,
		getOrder:           getOrder,
		getCart:            getCart,
		confirmations:      confirmations,
		drivers:            drivers,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/status", s.AdvanceOrderStatus)
	api.POST("/orders/:orderId/confirmation", s.ConfirmOrder)

	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PATCH("/cart/items/:itemId", s.UpdateCartItemQuantity)
	api.DELETE("/cart/items/:itemId", s.RemoveCartItem)

	api.POST("/drivers/connect", s.DriverConnect)
	api.POST("/drivers/disconnect", s.DriverDisconnect)
	api.PUT("/drivers/location", s.DriverUpdateLocation)
	api.POST("/deliveries/:deliveryId/accept", s.AcceptOffer)
	api.POST("/deliveries/:deliveryId/reject", s.RejectOffer)
	api.POST("/deliveries/:deliveryId/pickup", s.MarkPickedUp)
	api.POST("/deliveries/:deliveryId/delivered", s.MarkDelivered)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	customerID, err := customerFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, req.AddressLine, req.Postcode, req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		switch {
		case errors.Is(err, commands.ErrCartIsEmpty):
			return conflict(ctx, err)
		case errors.Is(err, errs.ErrObjectNotFound):
			return notFound(ctx, err)
		default:
			return internalError(ctx, err)
		}
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	customerID, err := customerFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, customerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	view, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, err)
		}
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(view))
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel. The caller
// identifies as the customer or, when rejecting an order it can no longer
// fulfil, as the food place.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := cancelCommandForCaller(ctx, orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cancelled, err := s.cancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, err)
		}
		return internalError(ctx, err)
	}
	if !cancelled {
		return conflict(ctx, errors.New("order can no longer be cancelled"))
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrderStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AdvanceOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	foodPlaceID, err := kernel.UUIDFromString(req.FoodPlaceID)
	if err != nil {
		return badRequest(ctx, err)
	}
	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, foodPlaceID, target)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.advanceOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, err)
		}
		return internalError(ctx, err)
	}

	switch result {
	case commands.AdvanceResultAdvanced:
		return ctx.NoContent(http.StatusNoContent)
	case commands.AdvanceResultForbidden:
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "order belongs to another food place",
		})
	default:
		return conflict(ctx, errors.New("status change is not permitted"))
	}
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	customerID, err := customerFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetCartQuery(customerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	view, err := s.getCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartToResponse(view))
}

// AddCartItem handles POST /api/v1/cart/items.
func (s *Server) AddCartItem(ctx echo.Context) error {
	customerID, err := customerFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AddCartItemRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	foodPlaceID, err := kernel.UUIDFromString(req.FoodPlaceID)
	if err != nil {
		return badRequest(ctx, err)
	}
	itemID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return badRequest(ctx, err)
	}
	unitPrice, err := kernel.NewMoney(req.UnitPrice)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAddCartItemCommand(customerID, foodPlaceID, itemID, req.Quantity, unitPrice)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.addCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCartItemQuantity handles PATCH /api/v1/cart/items/:itemId.
func (s *Server) UpdateCartItemQuantity(ctx echo.Context) error {
	customerID, err := customerFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req UpdateCartItemQuantityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	cmd, err := commands.NewUpdateCartItemQuantityCommand(customerID, itemID, req.Quantity)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.updateCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, err)
		}
		return internalError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:itemId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	customerID, err := customerFromHeader(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("itemId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRemoveCartItemCommand(customerID, itemID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.removeCartItem.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, err)
		}
		return internalError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmOrder handles POST /api/v1/orders/:orderId/confirmation, the
// food place answering a pending confirmation request.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	foodPlaceID, err := identityFromHeader(ctx, FoodPlaceHeader)
	if err != nil {
		return badRequest(ctx, err)
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req ConfirmOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	if err = s.confirmations.Answer(orderID, foodPlaceID, req.Accepted); err != nil {
		return conflict(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DriverConnect handles POST /api/v1/drivers/connect.
func (s *Server) DriverConnect(ctx echo.Context) error {
	driverID, err := identityFromHeader(ctx, DriverHeader)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.drivers.Connect(driverID); err != nil {
		return badRequest(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DriverDisconnect handles POST /api/v1/drivers/disconnect.
func (s *Server) DriverDisconnect(ctx echo.Context) error {
	driverID, err := identityFromHeader(ctx, DriverHeader)
	if err != nil {
		return badRequest(ctx, err)
	}
	if err = s.drivers.Disconnect(driverID); err != nil {
		return badRequest(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DriverUpdateLocation handles PUT /api/v1/drivers/location.
func (s *Server) DriverUpdateLocation(ctx echo.Context) error {
	driverID, err := identityFromHeader(ctx, DriverHeader)
	if err != nil {
		return badRequest(ctx, err)
	}

	var req DriverLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	err = s.drivers.UpdateLocation(driverID, req.Latitude, req.Longitude, req.Accuracy, req.Speed, req.Heading)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, err)
		}
		return badRequest(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AcceptOffer handles POST /api/v1/deliveries/:deliveryId/accept.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	driverID, err := identityFromHeader(ctx, DriverHeader)
	if err != nil {
		return badRequest(ctx, err)
	}
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	won, err := s.drivers.AcceptOffer(ctx.Request().Context(), deliveryID, driverID)
	if err != nil {
		if errors.Is(err, assignment.ErrNoOpenOffer) {
			return conflict(ctx, err)
		}
		return internalError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, AcceptOfferResponse{Won: won})
}

// RejectOffer handles POST /api/v1/deliveries/:deliveryId/reject.
func (s *Server) RejectOffer(ctx echo.Context) error {
	driverID, err := identityFromHeader(ctx, DriverHeader)
	if err != nil {
		return badRequest(ctx, err)
	}
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.drivers.RejectOffer(deliveryID, driverID); err != nil {
		if errors.Is(err, assignment.ErrNoOpenOffer) {
			return conflict(ctx, err)
		}
		return internalError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkPickedUp handles POST /api/v1/deliveries/:deliveryId/pickup.
func (s *Server) MarkPickedUp(ctx echo.Context) error {
	driverID, err := identityFromHeader(ctx, DriverHeader)
	if err != nil {
		return badRequest(ctx, err)
	}
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	if err = s.drivers.MarkPickedUp(ctx.Request().Context(), deliveryID, driverID); err != nil {
		return deliveryEventError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/deliveries/:deliveryId/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	driverID, err := identityFromHeader(ctx, DriverHeader)
	if err != nil {
		return badRequest(ctx, err)
	}
	deliveryID, err := kernel.UUIDFromString(ctx.Param("deliveryId"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req MarkDeliveredRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, errors.New("invalid request body"))
	}

	err = s.drivers.MarkDelivered(ctx.Request().Context(), deliveryID, driverID, req.ConfirmationCode)
	if err != nil {
		return deliveryEventError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func deliveryEventError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, err)
	case errors.Is(err, delivery.ErrDriverNotAssigned):
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, delivery.ErrWrongConfirmationCode):
		return conflict(ctx, err)
	case errors.Is(err, commands.ErrConfirmationCodeIsRequired):
		return badRequest(ctx, err)
	case errors.Is(err, errs.ErrValueIsInvalid):
		// a state precondition failed, e.g. delivered before pickup
		return conflict(ctx, err)
	default:
		return internalError(ctx, err)
	}
}

func customerFromHeader(ctx echo.Context) (kernel.UUID, error) {
	return identityFromHeader(ctx, CustomerHeader)
}

func cancelCommandForCaller(ctx echo.Context, orderID kernel.UUID) (commands.CancelOrderCommand, error) {
	if ctx.Request().Header.Get(CustomerHeader) != "" {
		customerID, err := customerFromHeader(ctx)
		if err != nil {
			return commands.CancelOrderCommand{}, err
		}
		return commands.NewCancelOrderCommand(orderID, customerID)
	}

	foodPlaceID, err := identityFromHeader(ctx, FoodPlaceHeader)
	if err != nil {
		return commands.CancelOrderCommand{}, errors.New(
			"missing " + CustomerHeader + " or " + FoodPlaceHeader + " header")
	}
	return commands.NewCancelOrderCommandByFoodPlace(orderID, foodPlaceID)
}

func identityFromHeader(ctx echo.Context, header string) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(header)
	if raw == "" {
		return kernel.UUID{}, errors.New("missing " + header + " header")
	}
	return kernel.UUIDFromString(raw)
}

func orderToResponse(view queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, OrderItemResponse{
			ItemID:    item.ItemID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	resp := OrderResponse{
		OrderID:       view.ID.String(),
		Status:        view.Status,
		PaymentStatus: view.PaymentStatus,
		Totals: TotalsResponse{
			Subtotal:    view.Totals.Subtotal,
			ServiceFee:  view.Totals.ServiceFee,
			DeliveryFee: view.Totals.DeliveryFee,
			Total:       view.Totals.Total,
		},
		Items:     items,
		CreatedAt: view.CreatedAt.Format(time.RFC3339),
	}

	if view.Delivery != nil {
		deliveryResp := &OrderDeliveryResponse{
			DeliveryID: view.Delivery.ID.String(),
			Status:     view.Delivery.Status,
		}
		if view.Delivery.DriverID != nil {
			id := view.Delivery.DriverID.String()
			deliveryResp.DriverID = &id
		}
		resp.Delivery = deliveryResp
	}
	return resp
}

func cartToResponse(view queries.GetCartQueryResponse) CartResponse {
	items := make([]CartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, CartItemResponse{
			ItemID:    item.ItemID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	resp := CartResponse{
		Items: items,
		Pricing: TotalsResponse{
			Subtotal:    view.Pricing.Subtotal,
			ServiceFee:  view.Pricing.ServiceFee,
			DeliveryFee: view.Pricing.DeliveryFee,
			Total:       view.Pricing.Total,
		},
	}
	if view.FoodPlaceID != nil {
		id := view.FoodPlaceID.String()
		resp.FoodPlaceID = &id
	}
	return resp
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func notFound(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{
		Code:    http.StatusNotFound,
		Message: err.Error(),
	})
}

func conflict(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusConflict, ErrorResponse{
		Code:    http.StatusConflict,
		Message: err.Error(),
	})
}

func internalError(ctx echo.Context, _ error) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}
