// Package realtime is the inbound edge for connected drivers. Transports
// (the socket server, or plain HTTP during development) decode driver
// messages and call the gateway; the gateway owns the fan-in to presence,
// the offer coordinator and the delivery command handlers.
package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// OfferResponder is the slice of the assignment coordinator the driver
// channel needs.
type OfferResponder interface {
	AcceptOffer(ctx context.Context, deliveryID, driverID kernel.UUID) (bool, error)
	RejectOffer(deliveryID, driverID kernel.UUID) error
	DropDriver(driverID kernel.UUID)
}

// DriverGateway handles the messages a connected driver can send.
type DriverGateway struct {
	presence  ports.DriverPresence
	offers    OfferResponder
	pickedUp  commands.MarkDeliveryPickedUpCommandHandler
	delivered commands.MarkDeliveryDeliveredCommandHandler
	log       *slog.Logger
}

// NewDriverGateway wires the driver channel.
func NewDriverGateway(
	presence ports.DriverPresence,
	offers OfferResponder,
	pickedUp commands.MarkDeliveryPickedUpCommandHandler,
	delivered commands.MarkDeliveryDeliveredCommandHandler,
	log *slog.Logger,
) (*DriverGateway, error) {
	if presence == nil || offers == nil {
		return nil, fmt.Errorf("presence and offers must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DriverGateway{
		presence:  presence,
		offers:    offers,
		pickedUp:  pickedUp,
		delivered: delivered,
		log:       log.With("component", "realtime.DriverGateway"),
	}, nil
}

// Connect marks the driver online and available.
func (g *DriverGateway) Connect(driverID kernel.UUID) error {
	return g.presence.Connect(driverID)
}

// Disconnect takes the driver offline. Open offers treat the driver as
// having rejected them.
func (g *DriverGateway) Disconnect(driverID kernel.UUID) error {
	if err := g.presence.Disconnect(driverID); err != nil {
		return err
	}
	g.offers.DropDriver(driverID)
	return nil
}

// UpdateLocation records a telemetry report from the driver's device.
func (g *DriverGateway) UpdateLocation(driverID kernel.UUID, latitude, longitude, accuracy, speed, heading float64) error {
	update, err := driver.NewLocationUpdate(latitude, longitude, accuracy, speed, heading)
	if err != nil {
		return err
	}
	return g.presence.UpsertLocation(driverID, update)
}

// AcceptOffer is the driver tapping accept on a delivery offer. Reports
// whether this driver won the delivery.
func (g *DriverGateway) AcceptOffer(ctx context.Context, deliveryID, driverID kernel.UUID) (bool, error) {
	return g.offers.AcceptOffer(ctx, deliveryID, driverID)
}

// RejectOffer is the driver declining a delivery offer.
func (g *DriverGateway) RejectOffer(deliveryID, driverID kernel.UUID) error {
	return g.offers.RejectOffer(deliveryID, driverID)
}

// MarkPickedUp is the assigned driver reporting collection at the food
// place.
func (g *DriverGateway) MarkPickedUp(ctx context.Context, deliveryID, driverID kernel.UUID) error {
	cmd, err := commands.NewMarkDeliveryPickedUpCommand(deliveryID, driverID)
	if err != nil {
		return err
	}
	return g.pickedUp.Handle(ctx, cmd)
}

// MarkDelivered is the assigned driver completing the delivery with the
// customer's confirmation code.
func (g *DriverGateway) MarkDelivered(ctx context.Context, deliveryID, driverID kernel.UUID, confirmationCode string) error {
	cmd, err := commands.NewMarkDeliveryDeliveredCommand(deliveryID, driverID, confirmationCode)
	if err != nil {
		return err
	}
	return g.delivered.Handle(ctx, cmd)
}
