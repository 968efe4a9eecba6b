// Package confirmgw implements the food place confirmation gateway. A new
// order is pushed to the food place's realtime channel and the gateway
// waits for the answer; silence counts as a rejection once the timeout
// elapses.
package confirmgw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// DefaultAnswerTimeout bounds how long a food place has to answer a
// confirmation request.
const DefaultAnswerTimeout = 60 * time.Second

// EventConfirmationRequested is pushed to the food place's channel when an
// order needs an answer.
const EventConfirmationRequested = "order.confirmation_requested"

// ErrNoPendingConfirmation is returned when an answer arrives for an order
// that is not waiting on one.
var ErrNoPendingConfirmation = errors.New("no pending confirmation for this order")

type pendingRequest struct {
	foodPlaceID kernel.UUID
	answer      chan bool
	settled     bool
}

// Gateway asks food places to confirm orders over their realtime channel.
// Safe for concurrent use.
type Gateway struct {
	notifier ports.RealtimeNotifier
	timeout  time.Duration

	mu      sync.Mutex
	pending map[kernel.UUID]*pendingRequest

	log *slog.Logger
}

var _ ports.ConfirmationGateway = (*Gateway)(nil)

// NewGateway creates a confirmation gateway pushing through the given
// notifier.
func NewGateway(notifier ports.RealtimeNotifier, timeout time.Duration, log *slog.Logger) (*Gateway, error) {
	if notifier == nil {
		return nil, fmt.Errorf("notifier must not be nil")
	}
	if timeout <= 0 {
		timeout = DefaultAnswerTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &Gateway{
		notifier: notifier,
		timeout:  timeout,
		pending:  make(map[kernel.UUID]*pendingRequest),
		log:      log.With("component", "confirmgw.Gateway"),
	}, nil
}

// RequestConfirmation pushes the order to the food place and blocks until
// it answers or the timeout elapses. A timeout reports a rejection, not an
// error.
func (g *Gateway) RequestConfirmation(ctx context.Context, orderID, foodPlaceID kernel.UUID) (bool, error) {
	if err := errors.Join(orderID.Validate(), foodPlaceID.Validate()); err != nil {
		return false, err
	}

	request := &pendingRequest{
		foodPlaceID: foodPlaceID,
		answer:      make(chan bool, 1),
	}

	g.mu.Lock()
	if _, exists := g.pending[orderID]; exists {
		g.mu.Unlock()
		return false, fmt.Errorf("confirmation for order %s is already pending", orderID)
	}
	g.pending[orderID] = request
	g.mu.Unlock()
	defer g.remove(orderID)

	notification := ports.Notification{
		Event: EventConfirmationRequested,
		Payload: map[string]any{
			"orderId": orderID.String(),
		},
	}
	if err := g.notifier.NotifyFoodPlace(ctx, foodPlaceID, notification); err != nil {
		return false, fmt.Errorf("push confirmation request: %w", err)
	}
	g.log.Info("confirmation requested",
		"orderId", orderID.String(), "foodPlaceId", foodPlaceID.String())

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case accepted := <-request.answer:
		g.log.Info("confirmation answered",
			"orderId", orderID.String(), "accepted", accepted)
		return accepted, nil
	case <-timer.C:
		g.log.Info("confirmation timed out", "orderId", orderID.String())
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Answer records a food place's decision on a pending order. Answers for
// orders that are not waiting, or from a food place the order does not
// belong to, return ErrNoPendingConfirmation.
func (g *Gateway) Answer(orderID, foodPlaceID kernel.UUID, accepted bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	request, ok := g.pending[orderID]
	if !ok || request.settled {
		return ErrNoPendingConfirmation
	}
	if !request.foodPlaceID.IsEqual(foodPlaceID) {
		return ErrNoPendingConfirmation
	}

	request.settled = true
	request.answer <- accepted
	return nil
}

func (g *Gateway) remove(orderID kernel.UUID) {
	g.mu.Lock()
	delete(g.pending, orderID)
	g.mu.Unlock()
}
