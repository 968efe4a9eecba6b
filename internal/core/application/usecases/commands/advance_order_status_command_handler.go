package commands

import (
	"context"
	"log/slog"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// AdvanceOrderStatusResult is the outcome of a food place's advance request.
type AdvanceOrderStatusResult int

const (
	// AdvanceResultAdvanced means the order moved to the target status.
	AdvanceResultAdvanced AdvanceOrderStatusResult = iota

	// AdvanceResultForbidden means the order belongs to another food place.
	AdvanceResultForbidden

	// AdvanceResultNotPermitted means the target is not the order's single
	// next status, or lies outside the food place's part of the chain.
	AdvanceResultNotPermitted
)

// foodPlaceStatuses is the slice of the status chain a food place may move
// an order into. Earlier statuses belong to the workflow, cancellation to
// the customer.
var foodPlaceStatuses = map[order.Status]struct{}{
	order.Preparing:      {},
	order.ReadyForPickup: {},
	order.Delivering:     {},
	order.Completed:      {},
}

// AdvanceOrderStatusCommandHandler lets a food place move its orders
// forward. Only single steps are allowed: skipping ahead or moving
// backwards is answered with a not-permitted result.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.RealtimeNotifier
	log        *slog.Logger
}

// NewAdvanceOrderStatusCommandHandler creates a handler for food place
// status updates. The notifier may be nil when no realtime push is wanted.
func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.RealtimeNotifier,
	log *slog.Logger,
) AdvanceOrderStatusCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With("component", "commands.AdvanceOrderStatus"),
	}
}

// Handle processes the advance request.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (AdvanceOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceResultNotPermitted, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceResultNotPermitted, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AdvanceResultNotPermitted, err
	}
	if !ord.IsOwnedByFoodPlace(cmd.FoodPlaceID()) {
		return AdvanceResultForbidden, nil
	}

	if _, allowed := foodPlaceStatuses[cmd.Target()]; !allowed {
		return AdvanceResultNotPermitted, nil
	}
	next, ok := ord.Status().Next()
	if !ok || next != cmd.Target() {
		return AdvanceResultNotPermitted, nil
	}

	if err = ord.AdvanceTo(cmd.Target()); err != nil {
		return AdvanceResultNotPermitted, err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return AdvanceResultNotPermitted, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceResultNotPermitted, err
	}

	if h.notifier != nil {
		notification := ports.Notification{
			Event: "order.status",
			Payload: map[string]any{
				"orderId": ord.ID().String(),
				"status":  ord.Status().String(),
			},
		}
		if err = h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification); err != nil {
			h.log.Error("failed to push status update",
				"orderId", ord.ID().String(), "error", err)
		}
	}
	return AdvanceResultAdvanced, nil
}
