package commands

import (
	"context"
	"log/slog"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// MarkDeliveryDeliveredCommandHandler completes a delivery. The driver
// must present the customer's confirmation code; on success the order
// moves to completed and the driver returns to the available pool.
type MarkDeliveryDeliveredCommandHandler struct {
	uowFactory DeliveryUoWFactory
	presence   ports.DriverPresence
	notifier   ports.RealtimeNotifier
	log        *slog.Logger
}

// NewMarkDeliveryDeliveredCommandHandler creates a handler for delivered
// events.
func NewMarkDeliveryDeliveredCommandHandler(
	uowFactory DeliveryUoWFactory,
	presence ports.DriverPresence,
	notifier ports.RealtimeNotifier,
	log *slog.Logger,
) MarkDeliveryDeliveredCommandHandler {
	if log == nil {
		log = slog.Default()
	}
	return MarkDeliveryDeliveredCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		notifier:   notifier,
		log:        log.With("component", "commands.MarkDeliveryDelivered"),
	}
}

// Handle processes the delivered event. A wrong confirmation code is
// rejected with ErrWrongConfirmationCode; a driver who is not assigned to
// the delivery gets ErrDriverNotAssigned.
func (h *MarkDeliveryDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveryDeliveredCommand) error {
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
	if err = orderDelivery.MarkDelivered(cmd.DriverID(), cmd.ConfirmationCode()); err != nil {
		return err
	}
	if err = uow.DeliveryRepository().Update(ctx, orderDelivery); err != nil {
		return err
	}

	ord, err := uow.OrderRepository().Get(ctx, orderDelivery.OrderID())
	if err != nil {
		return err
	}
	if ord.Status() != order.Completed {
		if err = ord.AdvanceTo(order.Completed); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, ord); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.presence != nil {
		if err = h.presence.SetActiveDelivery(cmd.DriverID(), nil); err != nil {
			h.log.Warn("failed to release driver",
				"driverId", cmd.DriverID().String(), "error", err)
		}
	}

	if h.notifier != nil {
		notification := ports.Notification{
			Event: "delivery.delivered",
			Payload: map[string]any{
				"orderId":    ord.ID().String(),
				"deliveryId": orderDelivery.ID().String(),
			},
		}
		if err = h.notifier.NotifyCustomer(ctx, ord.CustomerID(), notification); err != nil {
			h.log.Error("failed to push delivered event",
				"deliveryId", orderDelivery.ID().String(), "error", err)
		}
	}
	return nil
}
