package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/addressrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/cartrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/deliveryrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/taskrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/delivery"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/order"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/pipeline"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and the
// repositories against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts the PostgreSQL container and migrates the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&deliveryrepo.DeliveryDTO{}, &paymentrepo.PaymentDTO{},
		&cartrepo.CartDTO{}, &addressrepo.AddressDTO{}, &taskrepo.TaskDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables so tests cannot interfere.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, deliveries, payments, carts, addresses, tasks").Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(customerID kernel.UUID) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), 2, suite.money(500))
	suite.Require().NoError(err)

	totals := order.Totals{
		Subtotal:    suite.money(1000),
		ServiceFee:  suite.money(100),
		DeliveryFee: suite.money(349),
		Total:       suite.money(1449),
	}

	ord, err := order.NewOrder(
		kernel.NewUUID(), customerID, kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{item}, totals)
	suite.Require().NoError(err)
	return ord
}

func (suite *UnitOfWorkIntegrationTestSuite) money(pence int64) kernel.Money {
	value, err := kernel.NewMoney(pence)
	suite.Require().NoError(err)
	return value
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin must be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersistsAcrossRepositories() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	ord := suite.newOrder(customerID)

	record, err := payment.NewPayment(ord.ID(), "pi_int", suite.money(1449))
	suite.Require().NoError(err)

	task, err := pipeline.NewTask(kernel.NewUUID(), ord.ID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ord))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, record))
	suite.Require().NoError(uow.TaskRepository().Add(ctx, task))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	loaded, err := reader.OrderRepository().Get(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal(ord.ID().String(), loaded.ID().String())
	suite.Equal(order.Pending, loaded.Status())
	suite.Len(loaded.Items(), 1)
	suite.Equal(int64(1449), loaded.Totals().Total.Pence())

	loadedPayment, err := reader.PaymentRepository().GetByOrderID(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.Equal("pi_int", loadedPayment.IntentID())
	suite.Equal(payment.PendingCapture, loadedPayment.Status())

	pending, err := reader.TaskRepository().GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(pending, 1)
	suite.Equal(task.ID().String(), pending[0].ID().String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestClaimedTasksAreNotHandedOutAgain() {
	ctx := context.Background()

	claimed, err := pipeline.NewTask(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	expired, err := pipeline.RestoreTask(
		kernel.NewUUID(), kernel.NewUUID(), pipeline.TaskStatusPending,
		1, "confirmation timed out",
		time.Now().UTC().Add(-time.Hour),
		suite.timePtr(time.Now().UTC().Add(-2*pipeline.ClaimLease)))
	suite.Require().NoError(err)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.TaskRepository().Add(ctx, claimed))
	suite.Require().NoError(setup.TaskRepository().Add(ctx, expired))
	suite.Require().NoError(claimed.Claim(time.Now()))
	suite.Require().NoError(setup.TaskRepository().Update(ctx, claimed))
	suite.Require().NoError(setup.Commit(ctx))

	reader := suite.factory.Create()
	pending, err := reader.TaskRepository().GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1, "a freshly claimed task must stay invisible")
	suite.Equal(expired.ID().String(), pending[0].ID().String(),
		"an expired lease must make the task eligible again")

	// settling the workflow releases the lease
	suite.Require().NoError(claimed.RecordFailure(nil, pipeline.DefaultMaxAttempts))
	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	suite.Require().NoError(writer.TaskRepository().Update(ctx, claimed))
	suite.Require().NoError(writer.Commit(ctx))

	pending, err = reader.TaskRepository().GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(pending, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) timePtr(value time.Time) *time.Time {
	return &value
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()
	ord := suite.newOrder(kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ord))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, ord.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCartRoundTrip() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	basket, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
	suite.Require().NoError(err)
	itemID := kernel.NewUUID()
	suite.Require().NoError(basket.AddItem(itemID, 3, suite.money(250)))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CartRepository().Add(ctx, basket))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	loaded, err := reader.CartRepository().GetActiveByCustomer(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Items(), 1)
	suite.True(loaded.Items()[0].ItemID().IsEqual(itemID))
	suite.Equal(3, loaded.Items()[0].Quantity())
	suite.Equal(basket.Pricing(), loaded.Pricing())
	suite.False(loaded.IsDirty(), "restored cart must start clean")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCleanCartUpdateSkipsWrite() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	basket, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
	suite.Require().NoError(err)
	suite.Require().NoError(basket.AddItem(kernel.NewUUID(), 1, suite.money(250)))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CartRepository().Add(ctx, basket))
	suite.Require().NoError(uow.CartRepository().Update(ctx, basket), "clean cart update must be a no-op")
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignDriverExactlyOneWinner() {
	ctx := context.Background()
	ord := suite.newOrder(kernel.NewUUID())

	dlv, err := delivery.NewDelivery(kernel.NewUUID(), ord.ID(), ord.DeliveryAddressID())
	suite.Require().NoError(err)

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.DeliveryRepository().Add(ctx, dlv))
	suite.Require().NoError(setup.Commit(ctx))

	const drivers = 8
	var wg sync.WaitGroup
	winners := make(chan kernel.UUID, drivers)

	for i := 0; i < drivers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			driverID := kernel.NewUUID()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				return
			}
			defer func() {
				_ = uow.Rollback(ctx)
			}()

			won, err := uow.DeliveryRepository().AssignDriver(ctx, dlv.ID(), driverID)
			if err != nil || !won {
				return
			}
			if err := uow.Commit(ctx); err != nil {
				return
			}
			winners <- driverID
		}()
	}

	wg.Wait()
	close(winners)

	var winnerIDs []kernel.UUID
	for id := range winners {
		winnerIDs = append(winnerIDs, id)
	}
	suite.Require().Len(winnerIDs, 1, "exactly one driver must win the delivery")

	reader := suite.factory.Create()
	claimed, err := reader.DeliveryRepository().Get(ctx, dlv.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, claimed.Status())
	suite.Require().NotNil(claimed.Driver())
	suite.True(claimed.Driver().IsEqual(winnerIDs[0]))
	suite.Require().NotNil(claimed.AssignedAt())
	suite.WithinDuration(time.Now().UTC(), *claimed.AssignedAt(), time.Minute)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
