package commands

import (
	"context"
	"log/slog"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// MarkDeliveryPickedUpCommandHandler records the assigned driver
// collecting the order. When the food place had already marked the order
// ready, the order moves on to delivering.
type MarkDeliveryPickedUpCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.RealtimeNotifier
	log        *slog.Logger
}

// NewMarkDeliveryPickedUpCommandHandler creates a handler for pickup events.
func NewMarkDeliveryPickedUpCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier ports.RealtimeNotifier,
	log *slog.Logger,
) MarkDeliveryPickedUpCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return MarkDeliveryPickedUpCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With("component", "commands.MarkDeliveryPickedUp"),
	}
}

// Handle processes the pickup event. Only the assigned driver may report
// it; anyone else gets ErrDriverNotAssigned.
func (h *MarkDeliveryPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkDeliveryPickedUpCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderDelivery, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err = orderDelivery.MarkPickedUp(cmd.DriverID()); err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Update(ctx, orderDelivery); err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, orderDelivery.OrderID())
	if err != nil {
		return err
	}
	if ord.Status() == order.ReadyForPickup {
		if err = ord.AdvanceTo(order.Delivering); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.notifier != nil {
		notification := ports.Notification{
			Event: "delivery.picked_up",
			Payload: map[string]any{
				"orderId":    ord.ID().String(),
				"deliveryId": orderDelivery.ID().String(),
			},
		}
		if err = h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification); err != nil {
			h.log.Error("failed to push pickup event",
				"deliveryId", orderDelivery.ID().String(), "error", err)
		}
	}
	return nil
}
