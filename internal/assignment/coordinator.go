// Package assignment implements the delivery offer workflow: pick nearby
// available drivers, fan the offer out to all of them at once and let the
// first acceptance win. The winner is decided by a conditional database
// write, so two drivers tapping accept in the same instant can never both
// get the job.
package assignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/services"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

const (
	// DefaultOfferTimeout bounds how long an offer stays open before the
	// assignment gives up.
	DefaultOfferTimeout = 30 * time.Second

	// Realtime event names used by the offer workflow.
	EventOfferBroadcast = "delivery.offer"
	EventOfferWon       = "delivery.offer.won"
	EventOfferClosed    = "delivery.offer.closed"
	EventDriverAssigned = "order.driver.assigned"
)

// ErrNoOpenOffer is returned when a driver answers an offer that does not
// exist or is already settled.
var ErrNoOpenOffer = errors.New("no open offer for this delivery")

type offerOutcome struct {
	assigned bool
	driverID kernel.UUID
}

// openOffer is the in-flight state of one broadcast offer. candidates
// shrinks as drivers reject; the outcome channel holds the single result.
type openOffer struct {
	deliveryID kernel.UUID
	candidates map[kernel.UUID]struct{}
	outcome    chan offerOutcome
	settled    bool
}

// Coordinator runs delivery offers. Safe for concurrent use; a single
// instance serves all deliveries.
type Coordinator struct {
	uowFactory ports.UnitOfWorkFactory
	presence   ports.DriverPresence
	notifier   ports.RealtimeNotifier
	selector   services.CandidateSelector

	offerTimeout time.Duration

	mu     sync.Mutex
	offers map[kernel.UUID]*openOffer

	log *slog.Logger
}

var _ ports.DeliveryAssigner = (*Coordinator)(nil)

// NewCoordinator wires an offer coordinator.
func NewCoordinator(
	uowFactory ports.UnitOfWorkFactory,
	presence ports.DriverPresence,
	notifier ports.RealtimeNotifier,
	selector services.CandidateSelector,
	offerTimeout time.Duration,
	log *slog.Logger,
) (*Coordinator, error) {
	if uowFactory == nil || presence == nil || notifier == nil {
		return nil, fmt.Errorf("uowFactory, presence and notifier must not be nil")
	}
	if offerTimeout <= 0 {
		offerTimeout = DefaultOfferTimeout
	}
	if log == nil {
		log = slog.Default()
	}

	return &Coordinator{
		uowFactory:   uowFactory,
		presence:     presence,
		notifier:     notifier,
		selector:     selector,
		offerTimeout: offerTimeout,
		offers:       make(map[kernel.UUID]*openOffer),
		log:          log.With("component", "assignment.Coordinator"),
	}, nil
}

// InitiateAssignment broadcasts an offer for the delivery to every eligible
// driver near the pickup and blocks until a driver wins it, every candidate
// rejects, or the offer times out. Reports whether a driver was assigned;
// running out of candidates is not an error.
func (c *Coordinator) InitiateAssignment(ctx context.Context, deliveryID kernel.UUID, pickup kernel.Location) (bool, error) {
	if err := deliveryID.Validate(); err != nil {
		return false, err
	}

	candidates, err := c.selector.Select(pickup, c.presence.Snapshot())
	if err != nil {
		if errors.Is(err, services.ErrNoCandidates) {
			c.log.Info("no candidate drivers", "deliveryId", deliveryID.String())
			return false, nil
		}
		return false, err
	}

	offer := &openOffer{
		deliveryID: deliveryID,
		candidates: make(map[kernel.UUID]struct{}, len(candidates)),
		outcome:    make(chan offerOutcome, 1),
	}
	driverIDs := make([]kernel.UUID, 0, len(candidates))
	for _, d := range candidates {
		offer.candidates[d.ID()] = struct{}{}
		driverIDs = append(driverIDs, d.ID())
	}

	c.mu.Lock()
	if _, exists := c.offers[deliveryID]; exists {
		c.mu.Unlock()
		return false, fmt.Errorf("offer for delivery %s is already open", deliveryID)
	}
	c.offers[deliveryID] = offer
	c.mu.Unlock()
	defer c.closeOffer(deliveryID)

	notification := ports.Notification{
		Event: EventOfferBroadcast,
		Payload: map[string]any{
			"deliveryId": deliveryID.String(),
			"pickup": map[string]float64{
				"latitude":  pickup.Latitude(),
				"longitude": pickup.Longitude(),
			},
		},
	}
	if err := c.notifier.BroadcastToDrivers(ctx, driverIDs, notification); err != nil {
		return false, fmt.Errorf("broadcast offer: %w", err)
	}
	c.log.Info("offer broadcast",
		"deliveryId", deliveryID.String(), "candidates", len(driverIDs))

	timer := time.NewTimer(c.offerTimeout)
	defer timer.Stop()

	select {
	case result := <-offer.outcome:
		if result.assigned {
			c.log.Info("offer won",
				"deliveryId", deliveryID.String(), "driverId", result.driverID.String())
		} else {
			c.log.Info("offer exhausted", "deliveryId", deliveryID.String())
		}
		return result.assigned, nil
	case <-timer.C:
		c.log.Info("offer timed out", "deliveryId", deliveryID.String())
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// AcceptOffer handles a driver tapping accept. The first acceptance claims
// the delivery through a conditional write; every later acceptance is an
// "already assigned" no-op reporting won=false, whether it lost the write
// race or arrived after the offer settled. Accepting a delivery that was
// never offered to this driver returns ErrNoOpenOffer.
func (c *Coordinator) AcceptOffer(ctx context.Context, deliveryID, driverID kernel.UUID) (won bool, err error) {
	c.mu.Lock()
	offer, ok := c.offers[deliveryID]
	if !ok {
		c.mu.Unlock()
		return false, ErrNoOpenOffer
	}
	if _, candidate := offer.candidates[driverID]; !candidate {
		c.mu.Unlock()
		return false, ErrNoOpenOffer
	}
	if offer.settled {
		// another candidate already won, same answer as losing the write race
		c.mu.Unlock()
		c.notify(ctx, func(ctx context.Context) error {
			return c.notifier.NotifyDriver(ctx, driverID, ports.Notification{
				Event:   EventOfferClosed,
				Payload: map[string]any{"deliveryId": deliveryID.String()},
			})
		})
		return false, nil
	}
	c.mu.Unlock()

	won, customerID, err := c.claimDelivery(ctx, deliveryID, driverID)
	if err != nil {
		return false, err
	}
	if !won {
		// another driver's conditional write got there first
		c.notify(ctx, func(ctx context.Context) error {
			return c.notifier.NotifyDriver(ctx, driverID, ports.Notification{
				Event:   EventOfferClosed,
				Payload: map[string]any{"deliveryId": deliveryID.String()},
			})
		})
		return false, nil
	}

	if err := c.presence.SetActiveDelivery(driverID, &deliveryID); err != nil {
		c.log.Error("failed to mark driver busy",
			"driverId", driverID.String(), "error", err)
	}

	c.notify(ctx, func(ctx context.Context) error {
		return c.notifier.NotifyDriver(ctx, driverID, ports.Notification{
			Event:   EventOfferWon,
			Payload: map[string]any{"deliveryId": deliveryID.String()},
		})
	})
	c.notify(ctx, func(ctx context.Context) error {
		return c.notifier.NotifyCustomer(ctx, customerID, ports.Notification{
			Event:   EventDriverAssigned,
			Payload: map[string]any{"deliveryId": deliveryID.String(), "driverId": driverID.String()},
		})
	})

	c.settle(deliveryID, offerOutcome{assigned: true, driverID: driverID})
	return true, nil
}

// RejectOffer removes a driver from an open offer's candidate pool. When
// the last candidate rejects, the waiting assignment reports failure.
func (c *Coordinator) RejectOffer(deliveryID, driverID kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	offer, ok := c.offers[deliveryID]
	if !ok || offer.settled {
		return ErrNoOpenOffer
	}
	if _, candidate := offer.candidates[driverID]; !candidate {
		return ErrNoOpenOffer
	}

	delete(offer.candidates, driverID)
	c.log.Info("offer rejected",
		"deliveryId", deliveryID.String(), "driverId", driverID.String())

	if len(offer.candidates) == 0 {
		offer.settled = true
		offer.outcome <- offerOutcome{assigned: false}
	}
	return nil
}

// DropDriver removes a disconnected driver from every open offer, as if
// they had rejected each one.
func (c *Coordinator) DropDriver(driverID kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, offer := range c.offers {
		if offer.settled {
			continue
		}
		if _, candidate := offer.candidates[driverID]; !candidate {
			continue
		}
		delete(offer.candidates, driverID)
		if len(offer.candidates) == 0 {
			offer.settled = true
			offer.outcome <- offerOutcome{assigned: false}
		}
	}
}

// claimDelivery runs the conditional write that decides the winner and, on
// success, loads the order to find the customer to notify.
func (c *Coordinator) claimDelivery(ctx context.Context, deliveryID, driverID kernel.UUID) (bool, kernel.UUID, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	won, err := uow.DeliveryRepository().AssignDriver(ctx, deliveryID, driverID)
	if err != nil {
		return false, kernel.UUID{}, err
	}
	if !won {
		return false, kernel.UUID{}, nil
	}

	assigned, err := uow.DeliveryRepository().Get(ctx, deliveryID)
	if err != nil {
		return false, kernel.UUID{}, err
	}
	ord, err := uow.OrderRepository().Get(ctx, assigned.OrderID())
	if err != nil {
		return false, kernel.UUID{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return false, kernel.UUID{}, err
	}
	return true, ord.CustomerID(), nil
}

// settle delivers the outcome to the waiting assignment exactly once.
func (c *Coordinator) settle(deliveryID kernel.UUID, result offerOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	offer, ok := c.offers[deliveryID]
	if !ok || offer.settled {
		return
	}
	offer.settled = true
	offer.outcome <- result
}

func (c *Coordinator) closeOffer(deliveryID kernel.UUID) {
	c.mu.Lock()
	delete(c.offers, deliveryID)
	c.mu.Unlock()
}

// notify pushes best effort; a failed push is logged, never propagated.
func (c *Coordinator) notify(ctx context.Context, push func(ctx context.Context) error) {
	if err := push(ctx); err != nil {
		c.log.Error("realtime push failed", "error", err)
	}
}
