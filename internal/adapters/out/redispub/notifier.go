// Package redispub pushes realtime events through Redis pub/sub. Each
// party listens on its own channel; the socket gateways subscribe and fan
// events out to the connected clients.
package redispub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// Channel name patterns. The suffix is the recipient's UUID.
const (
	driverChannelPattern    = "notify:driver:%s"
	customerChannelPattern  = "notify:customer:%s"
	foodPlaceChannelPattern = "notify:foodplace:%s"
)

// Notifier implements ports.RealtimeNotifier over Redis pub/sub.
type Notifier struct {
	client *redis.Client
}

var _ ports.RealtimeNotifier = (*Notifier)(nil)

// NewNotifier creates a notifier on the given Redis client.
func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

// DriverChannel returns the pub/sub channel for one driver.
func DriverChannel(driverID kernel.UUID) string {
	return fmt.Sprintf(driverChannelPattern, driverID.String())
}

// CustomerChannel returns the pub/sub channel for one customer.
func CustomerChannel(customerID kernel.UUID) string {
	return fmt.Sprintf(customerChannelPattern, customerID.String())
}

// FoodPlaceChannel returns the pub/sub channel for one food place.
func FoodPlaceChannel(foodPlaceID kernel.UUID) string {
	return fmt.Sprintf(foodPlaceChannelPattern, foodPlaceID.String())
}

// NotifyDriver pushes one event to a driver's channel.
func (n *Notifier) NotifyDriver(ctx context.Context, driverID kernel.UUID, notification ports.Notification) error {
	return n.publish(ctx, DriverChannel(driverID), notification)
}

// NotifyCustomer pushes one event to a customer's channel.
func (n *Notifier) NotifyCustomer(ctx context.Context, customerID kernel.UUID, notification ports.Notification) error {
	return n.publish(ctx, CustomerChannel(customerID), notification)
}

// NotifyFoodPlace pushes one event to a food place's channel.
func (n *Notifier) NotifyFoodPlace(ctx context.Context, foodPlaceID kernel.UUID, notification ports.Notification) error {
	return n.publish(ctx, FoodPlaceChannel(foodPlaceID), notification)
}

// BroadcastToDrivers fans one event out to several drivers. Publishing
// continues past individual failures so one dead channel cannot starve the
// rest; the first error is reported.
func (n *Notifier) BroadcastToDrivers(ctx context.Context, driverIDs []kernel.UUID, notification ports.Notification) error {
	var firstErr error
	for _, driverID := range driverIDs {
		if err := n.publish(ctx, DriverChannel(driverID), notification); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (n *Notifier) publish(ctx context.Context, channel string, notification ports.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return n.client.Publish(ctx, channel, payload).Err()
}
