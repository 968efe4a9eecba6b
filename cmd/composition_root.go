package cmd

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpadapter "github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/in/http"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/in/realtime"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/catalogue"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/confirmgw"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/paymentgw"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/postgres/historyrepo"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/adapters/out/redispub"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/assignment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/queries"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/services"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/jobs"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/payments"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/presence"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// Everything stateful (presence registry, offer coordinator, confirmation
// gateway) is built once here and shared.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	notifier      *redispub.Notifier
	registry      *presence.Registry
	coordinator   *assignment.Coordinator
	orchestrator  *payments.Orchestrator
	confirmations *confirmgw.Gateway
	directory     *catalogue.Client
}

// NewCompositionRoot builds the object graph from the configuration.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	notifier := redispub.NewNotifier(redisClient)

	historyRepo := historyrepo.NewGormLocationHistoryRepository(gormDB)
	registry := presence.NewRegistry(historyRepo, logger)

	selector := services.NewCandidateSelector(config.CandidateRadiusKm, config.MaxCandidates)
	coordinator, err := assignment.NewCoordinator(
		uowFactory, registry, notifier, selector, config.OfferTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("build assignment coordinator: %w", err)
	}

	paymentClient, err := paymentgw.NewClient(config.PaymentGatewayURL, config.PaymentGatewayAPIKey)
	if err != nil {
		return nil, fmt.Errorf("build payment gateway client: %w", err)
	}
	orchestrator, err := payments.NewOrchestrator(paymentClient, logger)
	if err != nil {
		return nil, fmt.Errorf("build payment orchestrator: %w", err)
	}

	confirmations, err := confirmgw.NewGateway(notifier, config.ConfirmationTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("build confirmation gateway: %w", err)
	}

	directory, err := catalogue.NewClient(config.CatalogueURL)
	if err != nil {
		return nil, fmt.Errorf("build catalogue client: %w", err)
	}

	return &CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    uowFactory,
		logger:        logger,
		notifier:      notifier,
		registry:      registry,
		coordinator:   coordinator,
		orchestrator:  orchestrator,
		confirmations: confirmations,
		directory:     directory,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.orchestrator)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.CancelOrderUoWFactory = FuncCancelOrderUoWFactory(func() commands.CancelOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.orchestrator)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderStatusCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCartItemQuantityCommandHandler() commands.UpdateCartItemQuantityCommandHandler {
	return commands.NewUpdateCartItemQuantityCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(
		c.processOrderUoWFactory(),
		c.confirmations,
		c.directory,
		c.coordinator,
		c.orchestrator,
		c.notifier,
		c.config.PipelineMaxAttempts,
		c.logger,
	)
}

func (c *CompositionRoot) CreateMarkDeliveryPickedUpCommandHandler() commands.MarkDeliveryPickedUpCommandHandler {
	return commands.NewMarkDeliveryPickedUpCommandHandler(c.deliveryUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateMarkDeliveryDeliveredCommandHandler() commands.MarkDeliveryDeliveredCommandHandler {
	return commands.NewMarkDeliveryDeliveredCommandHandler(
		c.deliveryUoWFactory(), c.registry, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDriverGateway() (*realtime.DriverGateway, error) {
	return realtime.NewDriverGateway(
		c.registry,
		c.coordinator,
		c.CreateMarkDeliveryPickedUpCommandHandler(),
		c.CreateMarkDeliveryDeliveredCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.processOrderUoWFactory(),
		c.CreateProcessOrderCommandHandler(),
		c.registry,
		c.coordinator,
		c.config.PresenceTTL,
		c.logger,
	)
}

func (c *CompositionRoot) CreateServer() (*httpadapter.Server, error) {
	driverGateway, err := c.CreateDriverGateway()
	if err != nil {
		return nil, err
	}

	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateAdvanceOrderStatusCommandHandler(),
		c.CreateAddCartItemCommandHandler(),
		c.CreateRemoveCartItemCommandHandler(),
		c.CreateUpdateCartItemQuantityCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetCartQueryHandler(),
		c.confirmations,
		driverGateway,
	), nil
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) processOrderUoWFactory() commands.ProcessOrderUoWFactory {
	return FuncProcessOrderUoWFactory(func() commands.ProcessOrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncCancelOrderUoWFactory func() commands.CancelOrderUoW

func (f FuncCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncProcessOrderUoWFactory func() commands.ProcessOrderUoW

func (f FuncProcessOrderUoWFactory) Create() commands.ProcessOrderUoW {
	return f()
}
