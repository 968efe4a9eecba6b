package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/address"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/pipeline"
)

// ErrCartIsEmpty is returned when placing an order from a cart with no
// lines. Nothing is persisted and no payment intent is created.
var ErrCartIsEmpty = errors.New("cart is empty")

// CreateOrderCommandHandler turns a customer's active cart into an order.
//
// The payment intent is reserved with the provider first; everything else,
// the address, the order with its item snapshot, the payment record, the
// processing task and the cart invalidation, commits in one transaction.
// If that transaction fails the intent is voided again, so the provider
// never holds funds for an order that does not exist.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	payments   PaymentIntents
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory, payments PaymentIntents) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		payments:   payments,
	}
}

// Handle processes the order placement command.
// Returns ErrCartIsEmpty when the active cart has no lines and an
// ObjectNotFoundError when the customer has no active cart.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pricing, err := h.loadCartPricing(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	record, err := h.payments.CreateIntent(ctx, cmd.OrderID(), pricing.Total)
	if err != nil {
		return err
	}

	if err := h.persistOrder(ctx, cmd, record); err != nil {
		if cancelErr := h.payments.CancelIntent(ctx, record.IntentID()); cancelErr != nil {
			return errors.Join(err, cancelErr)
		}
		return err
	}
	return nil
}

// loadCartPricing reads the active cart in a short transaction to price
// the payment intent before anything is written.
func (h *CreateOrderCommandHandler) loadCartPricing(ctx context.Context, customerID kernel.UUID) (cart.Pricing, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return cart.Pricing{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	activeCart, err := uow.CartRepository().GetActiveByCustomer(ctx, customerID)
	if err != nil {
		return cart.Pricing{}, err
	}
	if activeCart.IsEmpty() {
		return cart.Pricing{}, ErrCartIsEmpty
	}

	return activeCart.Pricing(), nil
}

func (h *CreateOrderCommandHandler) persistOrder(ctx context.Context, cmd CreateOrderCommand, record *payment.Payment) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	activeCart, err := uow.CartRepository().GetActiveByCustomer(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}
	if activeCart.IsEmpty() {
		return ErrCartIsEmpty
	}

	deliveryAddress, err := address.NewAddress(
		kernel.NewUUID(), cmd.CustomerID(), cmd.AddressLine(), cmd.Postcode(), cmd.Location())
	if err != nil {
		return err
	}
	if err = uow.AddressRepository().Add(ctx, deliveryAddress); err != nil {
		return err
	}

	items := make([]order.Item, 0, len(activeCart.Items()))
	for _, line := range activeCart.Items() {
		orderItem, itemErr := order.NewItem(line.ItemID(), line.Quantity(), line.UnitPrice())
		if itemErr != nil {
			return itemErr
		}
		items = append(items, orderItem)
	}

	pricing := activeCart.Pricing()
	totals := order.Totals{
		Subtotal:    pricing.Subtotal,
		ServiceFee:  pricing.ServiceFee,
		DeliveryFee: pricing.DeliveryFee,
		Total:       pricing.Total,
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.CustomerID(), activeCart.FoodPlaceID(), deliveryAddress.ID(), items, totals)
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.PaymentRepository().Add(ctx, record); err != nil {
		return err
	}

	task, err := pipeline.NewTask(kernel.NewUUID(), newOrder.ID())
	if err != nil {
		return err
	}
	if err = uow.TaskRepository().Add(ctx, task); err != nil {
		return err
	}

	if err = activeCart.MarkUsed(); err != nil {
		return err
	}
	if err = uow.CartRepository().Update(ctx, activeCart); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit order creation: %w", err)
	}
	return nil
}
