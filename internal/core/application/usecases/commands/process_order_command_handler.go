package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/pipeline"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// ProcessOrderCommandHandler runs the post-creation workflow for one
// queued task:
//
//  1. ask the food place to confirm the order; a rejection or timeout
//     cancels the order and voids the payment intent
//  2. on confirmation, move the order to preparing and create its delivery
//  3. find a driver through the offer workflow; failing that, cancel the
//     order, the delivery and the payment intent
//  4. capture the payment; a capture failure is recorded on the task for
//     retry and never cancels the order
//
// Every step checks the current state before acting, so a task that failed
// halfway resumes where it stopped instead of repeating finished steps.
type ProcessOrderCommandHandler struct {
	uowFactory   ProcessOrderUoWFactory
	confirmation ports.ConfirmationGateway
	directory    ports.FoodPlaceDirectory
	assigner     ports.DeliveryAssigner
	payments     PaymentIntents
	notifier     ports.RealtimeNotifier
	maxAttempts  int
	log          *slog.Logger
}

// NewProcessOrderCommandHandler creates a handler for the order workflow.
func NewProcessOrderCommandHandler(
	uowFactory ProcessOrderUoWFactory,
	confirmation ports.ConfirmationGateway,
	directory ports.FoodPlaceDirectory,
	assigner ports.DeliveryAssigner,
	payments PaymentIntents,
	notifier ports.RealtimeNotifier,
	maxAttempts int,
	log *slog.Logger,
) ProcessOrderCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = pipeline.DefaultMaxAttempts
	}
	if log == nil {
		log = slog.Default()
	}
	return ProcessOrderCommandHandler{
		uowFactory:   uowFactory,
		confirmation: confirmation,
		directory:    directory,
		assigner:     assigner,
		payments:     payments,
		notifier:     notifier,
		maxAttempts:  maxAttempts,
		log:          log.With("component", "commands.ProcessOrder"),
	}
}

// Handle runs the workflow for the task and records the outcome on it.
// The returned error is the workflow failure, already recorded; the caller
// only logs it.
func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	task, err := h.loadTask(ctx, cmd.TaskID())
	if err != nil {
		return err
	}
	if !task.IsPending() {
		return nil
	}

	runErr := h.run(ctx, task.OrderID())

	if err := h.recordOutcome(ctx, task, runErr); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func (h *ProcessOrderCommandHandler) loadTask(ctx context.Context, taskID kernel.UUID) (*pipeline.Task, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.TaskRepository().Get(ctx, taskID)
}

func (h *ProcessOrderCommandHandler) recordOutcome(ctx context.Context, task *pipeline.Task, runErr error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if runErr == nil {
		if err := task.MarkCompleted(); err != nil {
			return err
		}
	} else {
		if err := task.RecordFailure(runErr, h.maxAttempts); err != nil {
			return err
		}
		h.log.Warn("workflow run failed",
			"taskId", task.ID().String(),
			"orderId", task.OrderID().String(),
			"attempts", task.Attempts(),
			"error", runErr)
	}

	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// run executes the workflow stages the order still needs.
func (h *ProcessOrderCommandHandler) run(ctx context.Context, orderID kernel.UUID) error {
	ord, err := h.confirmationStage(ctx, orderID)
	if err != nil || ord == nil {
		return err
	}

	ord, err = h.assignmentStage(ctx, ord)
	if err != nil || ord == nil {
		return err
	}

	return h.captureStage(ctx, ord)
}

// confirmationStage asks the food place to confirm a fresh order. Returns
// the order when the workflow should continue, nil when it ended here.
func (h *ProcessOrderCommandHandler) confirmationStage(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	ord, err := h.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch ord.Status() {
	case order.Pending, order.PendingConfirmation:
		// fall through to ask the food place
	case order.Cancelled, order.Completed:
		return nil, nil
	default:
		// already confirmed on an earlier run
		return ord, nil
	}

	if ord.Status() == order.Pending {
		if err = ord.RequestConfirmation(); err != nil {
			return nil, err
		}
		if err = h.saveOrder(ctx, ord); err != nil {
			return nil, err
		}
	}

	accepted, err := h.confirmation.RequestConfirmation(ctx, ord.ID(), ord.FoodPlaceID())
	if err != nil {
		return nil, fmt.Errorf("request confirmation: %w", err)
	}

	if !accepted {
		if err = h.cancelOrder(ctx, ord.ID()); err != nil {
			return nil, err
		}
		h.notifyCustomer(ctx, ord.CustomerID(), "order.rejected", ord.ID())
		return nil, nil
	}

	// confirmed: start preparing and create the delivery
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err = uow.OrderRepository().Get(ctx, ord.ID())
	if err != nil {
		return nil, err
	}
	if err = ord.Confirm(); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return nil, err
	}

	newDelivery, err := delivery.NewDelivery(kernel.NewUUID(), ord.ID(), ord.DeliveryAddressID())
	if err != nil {
		return nil, err
	}
	if err = uow.DeliveryRepository().Add(ctx, newDelivery); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifyCustomer(ctx, ord.CustomerID(), "order.confirmed", ord.ID())
	return ord, nil
}

// assignmentStage finds a driver for the order's delivery. Returns the
// order when the workflow should continue, nil when it ended here.
func (h *ProcessOrderCommandHandler) assignmentStage(ctx context.Context, ord *order.Order) (*order.Order, error) {
	orderDelivery, err := h.loadDelivery(ctx, ord.ID())
	if err != nil {
		return nil, err
	}

	if !orderDelivery.IsAssignable() {
		// a driver already holds it, or the delivery was cancelled
		if orderDelivery.Status() == delivery.Cancelled {
			return nil, nil
		}
		return ord, nil
	}

	pickup, err := h.directory.GetLocation(ctx, ord.FoodPlaceID())
	if err != nil {
		return nil, fmt.Errorf("resolve food place location: %w", err)
	}

	assigned, err := h.assigner.InitiateAssignment(ctx, orderDelivery.ID(), pickup)
	if err != nil {
		return nil, fmt.Errorf("initiate assignment: %w", err)
	}

	if !assigned {
		if err = h.cancelOrder(ctx, ord.ID()); err != nil {
			return nil, err
		}
		h.notifyCustomer(ctx, ord.CustomerID(), "order.no_driver", ord.ID())
		return nil, nil
	}
	return ord, nil
}

// captureStage settles the payment. A failure here is returned for retry;
// the order stays alive.
func (h *ProcessOrderCommandHandler) captureStage(ctx context.Context, ord *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.PaymentRepository().GetByOrderID(ctx, ord.ID())
	if err != nil {
		return err
	}

	changed, err := h.payments.Capture(ctx, record)
	if err != nil {
		return fmt.Errorf("capture payment: %w", err)
	}
	if !changed {
		return nil
	}

	if err = uow.PaymentRepository().Update(ctx, record); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyCustomer(ctx, ord.CustomerID(), "order.payment_captured", ord.ID())
	return nil
}

// cancelOrder is the workflow's compensation: the order, its delivery if
// still unassigned, and the payment intent are cancelled together.
func (h *ProcessOrderCommandHandler) cancelOrder(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}
	if err = ord.Cancel(); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}

	orderDelivery, err := uow.DeliveryRepository().GetByOrderID(ctx, orderID)
	switch {
	case err == nil:
		if orderDelivery.IsAssignable() {
			if err = orderDelivery.Cancel(); err != nil {
				return err
			}
			if err = uow.DeliveryRepository().Update(ctx, orderDelivery); err != nil {
				return err
			}
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// no delivery yet
	default:
		return err
	}

	record, err := uow.PaymentRepository().GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	changed, err := h.payments.Cancel(ctx, record)
	if err != nil {
		return err
	}
	if changed {
		if err = uow.PaymentRepository().Update(ctx, record); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *ProcessOrderCommandHandler) loadOrder(ctx context.Context, orderID kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().Get(ctx, orderID)
}

func (h *ProcessOrderCommandHandler) saveOrder(ctx context.Context, ord *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, ord); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (h *ProcessOrderCommandHandler) loadDelivery(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.DeliveryRepository().GetByOrderID(ctx, orderID)
}

// notifyCustomer pushes best effort; the workflow never fails on a push.
func (h *ProcessOrderCommandHandler) notifyCustomer(ctx context.Context, customerID kernel.UUID, event string, orderID kernel.UUID) {
	if h.notifier == nil {
		return
	}
	notification := ports.Notification{
		Event:   event,
		Payload: map[string]any{"orderId": orderID.String()},
	}
	if err := h.notifier.NotifyCustomer(ctx, customerID, notification); err != nil {
		h.log.Error("failed to push order event",
			"orderId", orderID.String(), "event", event, "error", err)
	}
}
