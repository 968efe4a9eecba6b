// Package payments mediates between the payment provider and the payment
// records kept alongside orders. The orchestrator keeps the provider and
// the local record in step: the provider call happens first, the record
// changes only after the provider agreed, and the caller persists it.
//
// The orchestrator never retries a provider call. Retry policy belongs to
// the durable task that invoked it.
package payments

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// Orchestrator drives payment intents through their lifecycle.
type Orchestrator struct {
	gateway ports.PaymentGateway
	log     *slog.Logger
}

// NewOrchestrator wires an orchestrator to the payment provider.
func NewOrchestrator(gateway ports.PaymentGateway, log *slog.Logger) (*Orchestrator, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		gateway: gateway,
		log:     log.With("component", "payments.Orchestrator"),
	}, nil
}

// CreateIntent reserves the amount with the provider and returns the local
// payment record in PendingCapture. The caller persists the record; if that
// persist fails, CancelIntent compensates the orphaned provider intent.
func (o *Orchestrator) CreateIntent(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (*payment.Payment, error) {
	intentID, err := o.gateway.CreateIntent(ctx, orderID, amount)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	record, err := payment.NewPayment(orderID, intentID, amount)
	if err != nil {
		return nil, err
	}

	o.log.Info("payment intent created",
		"orderId", orderID.String(), "intentId", intentID, "amount", amount.String())
	return record, nil
}

// Capture settles the intent with the provider and marks the record
// completed. Returns (false, nil) when the record is already completed.
// Capturing a cancelled intent is an error.
func (o *Orchestrator) Capture(ctx context.Context, record *payment.Payment) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	switch record.Status() {
	case payment.Completed:
		return false, nil
	case payment.Cancelled:
		return false, payment.ErrPaymentAlreadyCancelled
	}

	if err := o.gateway.Capture(ctx, record.IntentID()); err != nil {
		return false, fmt.Errorf("capture payment intent %s: %w", record.IntentID(), err)
	}

	changed, err := record.Capture()
	if err != nil {
		return false, err
	}

	o.log.Info("payment captured",
		"orderId", record.OrderID().String(), "intentId", record.IntentID())
	return changed, nil
}

// Cancel voids the intent with the provider and marks the record
// cancelled. Returns (false, nil) when the record is already terminal,
// captured or cancelled alike.
func (o *Orchestrator) Cancel(ctx context.Context, record *payment.Payment) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	if record.Status() == payment.Completed || record.Status() == payment.Cancelled {
		return false, nil
	}

	if err := o.gateway.Cancel(ctx, record.IntentID()); err != nil {
		return false, fmt.Errorf("cancel payment intent %s: %w", record.IntentID(), err)
	}

	changed, err := record.Cancel()
	if err != nil {
		return false, err
	}

	o.log.Info("payment cancelled",
		"orderId", record.OrderID().String(), "intentId", record.IntentID())
	return changed, nil
}

// CancelIntent voids a provider intent that has no local record yet, the
// compensation for a failed order creation transaction.
func (o *Orchestrator) CancelIntent(ctx context.Context, intentID string) error {
	if intentID == "" {
		return nil
	}
	if err := o.gateway.Cancel(ctx, intentID); err != nil {
		return fmt.Errorf("cancel orphaned payment intent %s: %w", intentID, err)
	}
	return nil
}
