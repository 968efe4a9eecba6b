package commands

import (
	"context"
	"errors"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation, whether the
// customer or the food place asked for it.
//
// An order can be cancelled while it waits for the food place's answer or
// is being prepared, and only while its delivery, if one exists, has no
// driver yet. Outside that window the request is answered with a
// not-permitted result rather than an error: the caller asked a valid
// question and the answer is no.
type CancelOrderCommandHandler struct {
	uowFactory CancelOrderUoWFactory
	payments   PaymentIntents
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory CancelOrderUoWFactory, payments PaymentIntents) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
	}
}

// Handle processes the cancellation command. Reports whether the order was
// cancelled; (false, nil) means cancellation is not permitted in the
// order's current state. An order the requester does not own is reported
// as not found.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}
	if !h.requesterOwnsOrder(ord, cmd) {
		return false, errs.NewObjectNotFoundError("orderId", cmd.OrderID().String())
	}

	if !ord.IsExplicitlyCancellable() {
		return false, nil
	}

	orderDelivery, err := uow.DeliveryRepository().GetByOrderID(ctx, cmd.OrderID())
	switch {
	case err == nil:
		if !orderDelivery.IsAssignable() {
			// a driver already holds the delivery
			return false, nil
		}
		if err = orderDelivery.Cancel(); err != nil {
			return false, err
		}
		if err = uow.DeliveryRepository().Update(ctx, orderDelivery); err != nil {
			return false, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// order has no delivery yet, nothing to cancel there
	default:
		return false, err
	}

	if err = ord.Cancel(); err != nil {
		return false, err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return false, err
	}

	record, err := uow.PaymentRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}
	changed, err := h.payments.Cancel(ctx, record)
	if err != nil {
		return false, err
	}
	if changed {
		if err = uow.PaymentRepository().Update(ctx, record); err != nil {
			return false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (h *CancelOrderCommandHandler) requesterOwnsOrder(ord *order.Order, cmd CancelOrderCommand) bool {
	if cmd.Actor() == CancelActorFoodPlace {
		return ord.IsOwnedByFoodPlace(cmd.RequesterID())
	}
	return ord.IsOwnedByCustomer(cmd.RequesterID())
}
