package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/payment"
)

func money(t *testing.T, pence int64) kernel.Money {
	t.Helper()
	value, err := kernel.NewMoney(pence)
	require.NoError(t, err)
	return value
}

func activeCartWithOneItem(t *testing.T, customerID kernel.UUID) *cart.Cart {
	t.Helper()
	activeCart, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
	require.NoError(t, err)
	require.NoError(t, activeCart.AddItem(kernel.NewUUID(), 2, money(t, 500)))
	return activeCart
}

func Test_CreateOrderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	newCommand := func(t *testing.T, orderID, customerID kernel.UUID) commands.CreateOrderCommand {
		cmd, err := commands.NewCreateOrderCommand(
			orderID, customerID, "221B Baker Street", "NW1 6XE", 51.52, -0.15)
		require.NoError(t, err)
		return cmd
	}

	t.Run("places order, records payment, schedules task and burns the cart", func(t *testing.T) {
		orderID := kernel.NewUUID()
		customerID := kernel.NewUUID()
		activeCart := activeCartWithOneItem(t, customerID)
		total := activeCart.Pricing().Total

		record, err := payment.NewPayment(orderID, "pi_123", total)
		require.NoError(t, err)

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(activeCart, nil).Twice()
		cartRepo.On("Update", ctx, activeCart).Return(nil).Once()

		orderRepo := &MockOrderRepository{}
		orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

		paymentRepo := &MockPaymentRepository{}
		paymentRepo.On("Add", ctx, record).Return(nil).Once()

		addressRepo := &MockAddressRepository{}
		addressRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

		taskRepo := &MockTaskRepository{}
		taskRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

		uow := &MockUoW{}
		uow.On("Begin", ctx).Return(nil).Twice()
		uow.On("Rollback", ctx).Return(nil).Twice()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("PaymentRepository").Return(paymentRepo)
		uow.On("AddressRepository").Return(addressRepo)
		uow.On("TaskRepository").Return(taskRepo)

		uowFactory := &MockCreateOrderUoWFactory{}
		uowFactory.On("Create").Return(uow).Twice()

		payments := &MockPaymentIntents{}
		payments.On("CreateIntent", ctx, orderID, total).Return(record, nil).Once()

		handler := commands.NewCreateOrderCommandHandler(uowFactory, payments)

		err = handler.Handle(ctx, newCommand(t, orderID, customerID))

		require.NoError(t, err)
		assert.True(t, activeCart.IsUsed())
		uow.AssertExpectations(t)
		cartRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
		paymentRepo.AssertExpectations(t)
		addressRepo.AssertExpectations(t)
		taskRepo.AssertExpectations(t)
		payments.AssertExpectations(t)
	})

	t.Run("empty cart creates no payment intent and writes nothing", func(t *testing.T) {
		customerID := kernel.NewUUID()
		emptyCart, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
		require.NoError(t, err)

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(emptyCart, nil).Once()

		uow := &MockUoW{}
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo)

		uowFactory := &MockCreateOrderUoWFactory{}
		uowFactory.On("Create").Return(uow).Once()

		payments := &MockPaymentIntents{}

		handler := commands.NewCreateOrderCommandHandler(uowFactory, payments)

		err = handler.Handle(ctx, newCommand(t, kernel.NewUUID(), customerID))

		require.ErrorIs(t, err, commands.ErrCartIsEmpty)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		payments.AssertExpectations(t)
	})

	t.Run("voids the payment intent when persistence fails", func(t *testing.T) {
		orderID := kernel.NewUUID()
		customerID := kernel.NewUUID()
		activeCart := activeCartWithOneItem(t, customerID)
		total := activeCart.Pricing().Total

		record, err := payment.NewPayment(orderID, "pi_456", total)
		require.NoError(t, err)

		storageErr := errors.New("storage is down")

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(activeCart, nil).Twice()

		addressRepo := &MockAddressRepository{}
		addressRepo.On("Add", ctx, mock.Anything).Return(nil).Once()

		orderRepo := &MockOrderRepository{}
		orderRepo.On("Add", ctx, mock.Anything).Return(storageErr).Once()

		uow := &MockUoW{}
		uow.On("Begin", ctx).Return(nil).Twice()
		uow.On("Rollback", ctx).Return(nil).Twice()
		uow.On("CartRepository").Return(cartRepo)
		uow.On("AddressRepository").Return(addressRepo)
		uow.On("OrderRepository").Return(orderRepo)

		uowFactory := &MockCreateOrderUoWFactory{}
		uowFactory.On("Create").Return(uow).Twice()

		payments := &MockPaymentIntents{}
		payments.On("CreateIntent", ctx, orderID, total).Return(record, nil).Once()
		payments.On("CancelIntent", ctx, "pi_456").Return(nil).Once()

		handler := commands.NewCreateOrderCommandHandler(uowFactory, payments)

		err = handler.Handle(ctx, newCommand(t, orderID, customerID))

		require.ErrorIs(t, err, storageErr)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		payments.AssertExpectations(t)
	})
}

func Test_NewCreateOrderCommand(t *testing.T) {
	t.Run("rejects blank address fields", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), "  ", "", 51.52, -0.15)

		require.ErrorIs(t, err, commands.ErrAddressLineIsRequired)
		require.ErrorIs(t, err, commands.ErrPostcodeIsRequired)
	})

	t.Run("rejects coordinates outside the service area", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), "221B Baker Street", "NW1 6XE", 12.0, -0.15)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
