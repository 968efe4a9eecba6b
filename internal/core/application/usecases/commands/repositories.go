// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// PaymentRepoFactory provides access to payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// CartRepoFactory provides access to cart repository within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// AddressRepoFactory provides access to address repository within a transaction.
	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	// TaskRepoFactory provides access to the processing task repository within a transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// CartUoW manages transactions for cart-only operations.
	CartUoW interface {
		TxManager
		CartRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// CancelOrderUoW manages transactions for order cancellation: the
	// order, its delivery and its payment change together.
	CancelOrderUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		PaymentRepoFactory
	}

	// CancelOrderUoWFactory creates new cancellation unit of work instances.
	CancelOrderUoWFactory interface {
		Create() CancelOrderUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW manages the single order creation transaction: the
	// address, the order with its items, the payment record, the pipeline
	// task and the cart invalidation commit or roll back as one.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		CartRepoFactory
		AddressRepoFactory
		TaskRepoFactory
	}

	// CreateOrderUoWFactory creates new order creation unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}

	// ProcessOrderUoW manages transactions for the durable post-creation
	// workflow, which may touch every aggregate an order owns.
	ProcessOrderUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		PaymentRepoFactory
		AddressRepoFactory
		TaskRepoFactory
	}

	// ProcessOrderUoWFactory creates new workflow unit of work instances.
	ProcessOrderUoWFactory interface {
		Create() ProcessOrderUoW
	}

	// DeliveryUoW manages transactions for driver delivery events.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}
)

// PaymentIntents is the slice of the payment orchestrator the command
// handlers need: creating, capturing and voiding intents. The orchestrator
// talks to the provider; the handlers persist the returned records.
type PaymentIntents interface {
	CreateIntent(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (*payment.Payment, error)
	Capture(ctx context.Context, record *payment.Payment) (bool, error)
	Cancel(ctx context.Context, record *payment.Payment) (bool, error)
	CancelIntent(ctx context.Context, intentID string) error
}
