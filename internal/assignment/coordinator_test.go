package assignment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/driver"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/services"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/presence"
)

// fakeStore emulates the conditional assignment write: exactly one claim
// per delivery succeeds, no matter how many race.
type fakeStore struct {
	mu         sync.Mutex
	delivery   *delivery.Delivery
	order      *order.Order
	claimedBy  *kernel.UUID
	claimCalls int
}

type fakeDeliveryRepo struct{ store *fakeStore }

func (r *fakeDeliveryRepo) Add(_ context.Context, _ *delivery.Delivery) error    { return nil }
func (r *fakeDeliveryRepo) Update(_ context.Context, _ *delivery.Delivery) error { return nil }

func (r *fakeDeliveryRepo) Get(_ context.Context, _ kernel.UUID) (*delivery.Delivery, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.delivery, nil
}

func (r *fakeDeliveryRepo) GetByOrderID(_ context.Context, _ kernel.UUID) (*delivery.Delivery, error) {
	return r.store.delivery, nil
}

func (r *fakeDeliveryRepo) AssignDriver(_ context.Context, _, driverID kernel.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.claimCalls++
	if r.store.claimedBy != nil {
		return false, nil
	}
	r.store.claimedBy = &driverID
	return true, nil
}

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Add(_ context.Context, _ *order.Order) error    { return nil }
func (r *fakeOrderRepo) Update(_ context.Context, _ *order.Order) error { return nil }
func (r *fakeOrderRepo) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return r.store.order, nil
}

type fakeUoW struct{ store *fakeStore }

func (u *fakeUoW) Begin(_ context.Context) error    { return nil }
func (u *fakeUoW) Commit(_ context.Context) error   { return nil }
func (u *fakeUoW) Rollback(_ context.Context) error { return nil }

func (u *fakeUoW) OrderRepository() ports.OrderRepository       { return &fakeOrderRepo{store: u.store} }
func (u *fakeUoW) DeliveryRepository() ports.DeliveryRepository { return &fakeDeliveryRepo{store: u.store} }
func (u *fakeUoW) PaymentRepository() ports.PaymentRepository   { return nil }
func (u *fakeUoW) CartRepository() ports.CartRepository         { return nil }
func (u *fakeUoW) AddressRepository() ports.AddressRepository   { return nil }
func (u *fakeUoW) TaskRepository() ports.TaskRepository         { return nil }

type fakeUoWFactory struct{ store *fakeStore }

func (f *fakeUoWFactory) Create() ports.UnitOfWork { return &fakeUoW{store: f.store} }

// recordingNotifier collects pushed events per recipient.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) record(event string) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) count(event string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, e := range n.events {
		if e == event {
			total++
		}
	}
	return total
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

func (n *recordingNotifier) BroadcastToDrivers(_ context.Context, ids []kernel.UUID, ntf ports.Notification) error {
	for range ids {
		n.record(ntf.Event)
	}
	return nil
}

func newFixture(t *testing.T, driverCount int) (*Coordinator, *fakeStore, *recordingNotifier, []kernel.UUID, kernel.Location) {
	t.Helper()

	pickup, err := kernel.NewLocation(51.5074, -0.1278)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, kernel.NewUUID())
	require.NoError(t, err)

	orderItem, err := order.NewItem(kernel.NewUUID(), 2, kernel.Money(500))
	require.NoError(t, err)
	items := []order.Item{orderItem}
	totals := order.Totals{
		Subtotal: 1000, ServiceFee: 100, DeliveryFee: 349, Total: 1449,
	}
	ord, err := order.NewOrder(orderID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), items, totals)
	require.NoError(t, err)

	store := &fakeStore{delivery: d, order: ord}
	registry := presence.NewRegistry(nil, nil)

	driverIDs := make([]kernel.UUID, driverCount)
	for i := range driverIDs {
		driverIDs[i] = kernel.NewUUID()
		require.NoError(t, registry.Connect(driverIDs[i]))
		update, err := driver.NewLocationUpdate(51.5080, -0.1280, 10, 5, 90)
		require.NoError(t, err)
		require.NoError(t, registry.UpsertLocation(driverIDs[i], update))
	}

	notifier := &recordingNotifier{}
	coordinator, err := NewCoordinator(
		&fakeUoWFactory{store: store},
		registry,
		notifier,
		services.NewCandidateSelector(5, 10),
		2*time.Second,
		nil,
	)
	require.NoError(t, err)

	return coordinator, store, notifier, driverIDs, pickup
}

func TestCoordinator_SingleAccept(t *testing.T) {
	coordinator, store, notifier, driverIDs, pickup := newFixture(t, 3)
	deliveryID := store.delivery.ID()

	var assigned bool
	var assignErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		assigned, assignErr = coordinator.InitiateAssignment(context.Background(), deliveryID, pickup)
	}()

	require.Eventually(t, func() bool {
		return notifier.count(EventOfferBroadcast) == 3
	}, time.Second, 5*time.Millisecond)

	won, err := coordinator.AcceptOffer(context.Background(), deliveryID, driverIDs[0])
	require.NoError(t, err)
	assert.True(t, won)

	<-done
	require.NoError(t, assignErr)
	assert.True(t, assigned)
	require.NotNil(t, store.claimedBy)
	assert.True(t, store.claimedBy.IsEqual(driverIDs[0]))
	assert.Equal(t, 1, notifier.count(EventOfferWon))
	assert.Equal(t, 1, notifier.count(EventDriverAssigned))
}

func TestCoordinator_ConcurrentAccepts_ExactlyOneWinner(t *testing.T) {
	const drivers = 8
	coordinator, store, notifier, driverIDs, pickup := newFixture(t, drivers)
	deliveryID := store.delivery.ID()

	var assigned bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		assigned, _ = coordinator.InitiateAssignment(context.Background(), deliveryID, pickup)
	}()

	require.Eventually(t, func() bool {
		return notifier.count(EventOfferBroadcast) == drivers
	}, time.Second, 5*time.Millisecond)

	var wg sync.WaitGroup
	wins := make(chan kernel.UUID, drivers)
	for _, id := range driverIDs {
		wg.Add(1)
		go func(driverID kernel.UUID) {
			defer wg.Done()
			won, err := coordinator.AcceptOffer(context.Background(), deliveryID, driverID)
			if err == nil && won {
				wins <- driverID
			}
		}(id)
	}
	wg.Wait()
	close(wins)
	<-done

	var winners []kernel.UUID
	for id := range wins {
		winners = append(winners, id)
	}
	require.Len(t, winners, 1, "exactly one driver must win the offer")
	assert.True(t, assigned)
	require.NotNil(t, store.claimedBy)
	assert.True(t, store.claimedBy.IsEqual(winners[0]))
	assert.Equal(t, 1, notifier.count(EventOfferWon))
	assert.Equal(t, 1, notifier.count(EventDriverAssigned))
}

func TestCoordinator_AllReject(t *testing.T) {
	coordinator, store, _, driverIDs, pickup := newFixture(t, 2)
	deliveryID := store.delivery.ID()

	resultCh := make(chan bool, 1)
	go func() {
		assigned, err := coordinator.InitiateAssignment(context.Background(), deliveryID, pickup)
		require.NoError(t, err)
		resultCh <- assigned
	}()

	require.Eventually(t, func() bool {
		return coordinator.RejectOffer(deliveryID, driverIDs[0]) == nil
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, coordinator.RejectOffer(deliveryID, driverIDs[1]))

	select {
	case assigned := <-resultCh:
		assert.False(t, assigned)
	case <-time.After(time.Second):
		t.Fatal("assignment did not settle after all rejections")
	}
	assert.Nil(t, store.claimedBy)
}

func TestCoordinator_Timeout(t *testing.T) {
	coordinator, store, notifier, _, pickup := newFixture(t, 1)
	coordinator.offerTimeout = 50 * time.Millisecond
	deliveryID := store.delivery.ID()

	assigned, err := coordinator.InitiateAssignment(context.Background(), deliveryID, pickup)

	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Equal(t, 1, notifier.count(EventOfferBroadcast))
}

func TestCoordinator_NoCandidates(t *testing.T) {
	coordinator, store, notifier, _, pickup := newFixture(t, 0)
	deliveryID := store.delivery.ID()

	assigned, err := coordinator.InitiateAssignment(context.Background(), deliveryID, pickup)

	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Zero(t, notifier.count(EventOfferBroadcast))
}

func TestCoordinator_AcceptAfterOfferSettled(t *testing.T) {
	coordinator, store, notifier, driverIDs, _ := newFixture(t, 2)
	deliveryID := store.delivery.ID()

	// the first candidate already won; the runner-up's acceptance arrives
	// before the offer is torn down
	coordinator.mu.Lock()
	coordinator.offers[deliveryID] = &openOffer{
		deliveryID: deliveryID,
		candidates: map[kernel.UUID]struct{}{
			driverIDs[0]: {},
			driverIDs[1]: {},
		},
		outcome: make(chan offerOutcome, 1),
		settled: true,
	}
	coordinator.mu.Unlock()

	won, err := coordinator.AcceptOffer(context.Background(), deliveryID, driverIDs[1])

	require.NoError(t, err)
	assert.False(t, won)
	assert.Equal(t, 1, notifier.count(EventOfferClosed))
	assert.Nil(t, store.claimedBy)
}

func TestCoordinator_AcceptWithoutOpenOffer(t *testing.T) {
	coordinator, store, _, _, _ := newFixture(t, 1)

	won, err := coordinator.AcceptOffer(context.Background(), store.delivery.ID(), kernel.NewUUID())

	assert.False(t, won)
	assert.ErrorIs(t, err, ErrNoOpenOffer)
}

func TestCoordinator_DropDriver_SettlesEmptyOffer(t *testing.T) {
	coordinator, store, _, driverIDs, pickup := newFixture(t, 1)
	deliveryID := store.delivery.ID()

	resultCh := make(chan bool, 1)
	go func() {
		assigned, _ := coordinator.InitiateAssignment(context.Background(), deliveryID, pickup)
		resultCh <- assigned
	}()

	require.Eventually(t, func() bool {
		coordinator.mu.Lock()
		defer coordinator.mu.Unlock()
		_, ok := coordinator.offers[deliveryID]
		return ok
	}, time.Second, 5*time.Millisecond)

	coordinator.DropDriver(driverIDs[0])

	select {
	case assigned := <-resultCh:
		assert.False(t, assigned)
	case <-time.After(time.Second):
		t.Fatal("assignment did not settle after driver dropped")
	}
}
