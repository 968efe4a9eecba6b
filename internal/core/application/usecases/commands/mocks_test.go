package commands_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/address"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/pipeline"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *MockDeliveryRepository) AssignDriver(ctx context.Context, deliveryID, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, deliveryID, driverID)
	return args.Bool(0), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCartRepository) Update(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}
func (m *MockCartRepository) GetActiveByCustomer(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Add(ctx context.Context, a *address.Address) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Add(ctx context.Context, t *pipeline.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTaskRepository) Update(ctx context.Context, t *pipeline.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
func (m *MockTaskRepository) Get(ctx context.Context, id kernel.UUID) (*pipeline.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Task), args.Error(1)
}
func (m *MockTaskRepository) GetPending(ctx context.Context, limit int) ([]*pipeline.Task, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pipeline.Task), args.Error(1)
}

// MockUoW satisfies every narrow unit of work interface the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}
func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}
func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	return m.Called().Get(0).(ports.PaymentRepository)
}
func (m *MockUoW) CartRepository() ports.CartRepository {
	return m.Called().Get(0).(ports.CartRepository)
}
func (m *MockUoW) AddressRepository() ports.AddressRepository {
	return m.Called().Get(0).(ports.AddressRepository)
}
func (m *MockUoW) TaskRepository() ports.TaskRepository {
	return m.Called().Get(0).(ports.TaskRepository)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return m.Called().Get(0).(commands.CreateOrderUoW)
}

type MockCancelOrderUoWFactory struct{ mock.Mock }

func (m *MockCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	return m.Called().Get(0).(commands.CancelOrderUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	return m.Called().Get(0).(commands.CartUoW)
}

type MockProcessOrderUoWFactory struct{ mock.Mock }

func (m *MockProcessOrderUoWFactory) Create() commands.ProcessOrderUoW {
	return m.Called().Get(0).(commands.ProcessOrderUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return m.Called().Get(0).(commands.DeliveryUoW)
}

type MockPaymentIntents struct{ mock.Mock }

func (m *MockPaymentIntents) CreateIntent(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (*payment.Payment, error) {
	args := m.Called(ctx, orderID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}
func (m *MockPaymentIntents) Capture(ctx context.Context, record *payment.Payment) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentIntents) Cancel(ctx context.Context, record *payment.Payment) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}
func (m *MockPaymentIntents) CancelIntent(ctx context.Context, intentID string) error {
	args := m.Called(ctx, intentID)
	return args.Error(0)
}

type MockConfirmationGateway struct{ mock.Mock }

func (m *MockConfirmationGateway) RequestConfirmation(ctx context.Context, orderID, foodPlaceID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID, foodPlaceID)
	return args.Bool(0), args.Error(1)
}

type MockFoodPlaceDirectory struct{ mock.Mock }

func (m *MockFoodPlaceDirectory) GetLocation(ctx context.Context, foodPlaceID kernel.UUID) (kernel.Location, error) {
	args := m.Called(ctx, foodPlaceID)
	return args.Get(0).(kernel.Location), args.Error(1)
}

type MockDeliveryAssigner struct{ mock.Mock }

func (m *MockDeliveryAssigner) InitiateAssignment(ctx context.Context, deliveryID kernel.UUID, pickup kernel.Location) (bool, error) {
	args := m.Called(ctx, deliveryID, pickup)
	return args.Bool(0), args.Error(1)
}

type MockRealtimeNotifier struct{ mock.Mock }

func (m *MockRealtimeNotifier) NotifyDriver(ctx context.Context, driverID kernel.UUID, n ports.Notification) error {
	args := m.Called(ctx, driverID, n)
	return args.Error(0)
}
func (m *MockRealtimeNotifier) NotifyCustomer(ctx context.Context, customerID kernel.UUID, n ports.Notification) error {
	args := m.Called(ctx, customerID, n)
	return args.Error(0)
}
func (m *MockRealtimeNotifier) NotifyFoodPlace(ctx context.Context, foodPlaceID kernel.UUID, n ports.Notification) error {
	args := m.Called(ctx, foodPlaceID, n)
	return args.Error(0)
}
func (m *MockRealtimeNotifier) BroadcastToDrivers(ctx context.Context, driverIDs []kernel.UUID, n ports.Notification) error {
	args := m.Called(ctx, driverIDs, n)
	return args.Error(0)
}
