package confirmgw

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) record(event string) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) NotifyDriver(_ context.Context, _ kernel.UUID, ntf ports.Notification) error {
	n.record(ntf.Event)
	return nil
}

func (n *recordingNotifier) NotifyCustomer(_ context.Context, _ kernel.UUID, ntf ports.Notification) error {
	n.record(ntf.Event)
	return nil
}

func (n *recordingNotifier) NotifyFoodPlace(_ context.Context, _ kernel.UUID, ntf ports.Notification) error {
	n.record(ntf.Event)
	return nil
}

func (n *recordingNotifier) BroadcastToDrivers(_ context.Context, _ []kernel.UUID, ntf ports.Notification) error {
	n.record(ntf.Event)
	return nil
}

func newUUID(t *testing.T) kernel.UUID {
	t.Helper()
	id, err := kernel.UUIDFromString(uuid.NewString())
	require.NoError(t, err)
	return id
}

func Test_Gateway_RequestConfirmation(t *testing.T) {
	t.Run("should report acceptance when the food place accepts", func(t *testing.T) {
		notifier := &recordingNotifier{}
		gateway, err := NewGateway(notifier, time.Second, nil)
		require.NoError(t, err)

		orderID := newUUID(t)
		foodPlaceID := newUUID(t)

		go func() {
			for {
				if err := gateway.Answer(orderID, foodPlaceID, true); err == nil {
					return
				}
				time.Sleep(time.Millisecond)
			}
		}()

		accepted, err := gateway.RequestConfirmation(context.Background(), orderID, foodPlaceID)

		require.NoError(t, err)
		assert.True(t, accepted)
		assert.Contains(t, notifier.events, EventConfirmationRequested)
	})

	t.Run("should report rejection when the food place declines", func(t *testing.T) {
		gateway, err := NewGateway(&recordingNotifier{}, time.Second, nil)
		require.NoError(t, err)

		orderID := newUUID(t)
		foodPlaceID := newUUID(t)

		go func() {
			for {
				if err := gateway.Answer(orderID, foodPlaceID, false); err == nil {
					return
				}
				time.Sleep(time.Millisecond)
			}
		}()

		accepted, err := gateway.RequestConfirmation(context.Background(), orderID, foodPlaceID)

		require.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("should treat a timeout as a rejection", func(t *testing.T) {
		gateway, err := NewGateway(&recordingNotifier{}, 20*time.Millisecond, nil)
		require.NoError(t, err)

		accepted, err := gateway.RequestConfirmation(context.Background(), newUUID(t), newUUID(t))

		require.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("should ignore an answer from the wrong food place", func(t *testing.T) {
		gateway, err := NewGateway(&recordingNotifier{}, 50*time.Millisecond, nil)
		require.NoError(t, err)

		orderID := newUUID(t)
		foodPlaceID := newUUID(t)
		otherFoodPlace := newUUID(t)

		done := make(chan struct{})
		go func() {
			defer close(done)
			accepted, reqErr := gateway.RequestConfirmation(context.Background(), orderID, foodPlaceID)
			assert.NoError(t, reqErr)
			assert.False(t, accepted)
		}()

		require.Eventually(t, func() bool {
			return gateway.Answer(orderID, otherFoodPlace, true) == ErrNoPendingConfirmation
		}, time.Second, time.Millisecond)

		// the request must fall through to the timeout, not the wrong answer
		<-done
	})

	t.Run("should reject an answer with no pending request", func(t *testing.T) {
		gateway, err := NewGateway(&recordingNotifier{}, time.Second, nil)
		require.NoError(t, err)

		err = gateway.Answer(newUUID(t), newUUID(t), true)

		assert.ErrorIs(t, err, ErrNoPendingConfirmation)
	})
}
