package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/application/usecases/commands"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

func newCartUoW(cartRepo *MockCartRepository) (*MockUoW, *MockCartUoWFactory) {
	uow := &MockUoW{}
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("CartRepository").Return(cartRepo)

	uowFactory := &MockCartUoWFactory{}
	uowFactory.On("Create").Return(uow)
	return uow, uowFactory
}

func Test_AddCartItemCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	newCommand := func(t *testing.T, customerID, foodPlaceID kernel.UUID) commands.AddCartItemCommand {
		cmd, err := commands.NewAddCartItemCommand(
			customerID, foodPlaceID, kernel.NewUUID(), 2, mustMoney(t, 500))
		require.NoError(t, err)
		return cmd
	}

	t.Run("creates a cart on first addition", func(t *testing.T) {
		customerID := kernel.NewUUID()
		foodPlaceID := kernel.NewUUID()

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).
			Return(nil, errs.NewObjectNotFoundError("customerId", customerID.String())).Once()
		cartRepo.On("Add", ctx, mock.MatchedBy(func(c *cart.Cart) bool {
			return c.CustomerID().IsEqual(customerID) &&
				c.FoodPlaceID().IsEqual(foodPlaceID) &&
				len(c.Items()) == 1
		})).Return(nil).Once()

		uow, uowFactory := newCartUoW(cartRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewAddCartItemCommandHandler(uowFactory)

		err := handler.Handle(ctx, newCommand(t, customerID, foodPlaceID))

		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("appends to the existing cart of the same food place", func(t *testing.T) {
		customerID := kernel.NewUUID()
		foodPlaceID := kernel.NewUUID()
		activeCart, err := cart.NewCart(kernel.NewUUID(), customerID, foodPlaceID, cart.DefaultTTL)
		require.NoError(t, err)

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(activeCart, nil).Once()
		cartRepo.On("Update", ctx, activeCart).Return(nil).Once()

		uow, uowFactory := newCartUoW(cartRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewAddCartItemCommandHandler(uowFactory)

		err = handler.Handle(ctx, newCommand(t, customerID, foodPlaceID))

		require.NoError(t, err)
		assert.Len(t, activeCart.Items(), 1)
		cartRepo.AssertExpectations(t)
	})

	t.Run("switching food place retires the old cart and starts fresh", func(t *testing.T) {
		customerID := kernel.NewUUID()
		oldCart, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
		require.NoError(t, err)
		require.NoError(t, oldCart.AddItem(kernel.NewUUID(), 1, mustMoney(t, 300)))

		newFoodPlaceID := kernel.NewUUID()

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(oldCart, nil).Once()
		cartRepo.On("Update", ctx, oldCart).Return(nil).Once()
		cartRepo.On("Add", ctx, mock.MatchedBy(func(c *cart.Cart) bool {
			return c.FoodPlaceID().IsEqual(newFoodPlaceID) && len(c.Items()) == 1
		})).Return(nil).Once()

		uow, uowFactory := newCartUoW(cartRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewAddCartItemCommandHandler(uowFactory)

		err = handler.Handle(ctx, newCommand(t, customerID, newFoodPlaceID))

		require.NoError(t, err)
		assert.True(t, oldCart.IsUsed())
		cartRepo.AssertExpectations(t)
	})
}

func Test_RemoveCartItemCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the whole line", func(t *testing.T) {
		customerID := kernel.NewUUID()
		itemID := kernel.NewUUID()
		activeCart, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
		require.NoError(t, err)
		require.NoError(t, activeCart.AddItem(itemID, 3, mustMoney(t, 500)))

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(activeCart, nil).Once()
		cartRepo.On("Update", ctx, activeCart).Return(nil).Once()

		uow, uowFactory := newCartUoW(cartRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewRemoveCartItemCommandHandler(uowFactory)

		cmd, err := commands.NewRemoveCartItemCommand(customerID, itemID)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		assert.True(t, activeCart.IsEmpty())
		cartRepo.AssertExpectations(t)
	})

	t.Run("reports a missing line as not found", func(t *testing.T) {
		customerID := kernel.NewUUID()
		activeCart, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
		require.NoError(t, err)

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(activeCart, nil).Once()

		uow, uowFactory := newCartUoW(cartRepo)

		handler := commands.NewRemoveCartItemCommandHandler(uowFactory)

		cmd, err := commands.NewRemoveCartItemCommand(customerID, kernel.NewUUID())
		require.NoError(t, err)

		require.ErrorIs(t, handler.Handle(ctx, cmd), errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func Test_UpdateCartItemQuantityCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("sets the line quantity", func(t *testing.T) {
		customerID := kernel.NewUUID()
		itemID := kernel.NewUUID()
		activeCart, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
		require.NoError(t, err)
		require.NoError(t, activeCart.AddItem(itemID, 1, mustMoney(t, 500)))

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(activeCart, nil).Once()
		cartRepo.On("Update", ctx, activeCart).Return(nil).Once()

		uow, uowFactory := newCartUoW(cartRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewUpdateCartItemQuantityCommandHandler(uowFactory)

		cmd, err := commands.NewUpdateCartItemQuantityCommand(customerID, itemID, 4)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		require.Len(t, activeCart.Items(), 1)
		assert.Equal(t, 4, activeCart.Items()[0].Quantity())
		cartRepo.AssertExpectations(t)
	})

	t.Run("quantity zero removes the line", func(t *testing.T) {
		customerID := kernel.NewUUID()
		itemID := kernel.NewUUID()
		activeCart, err := cart.NewCart(kernel.NewUUID(), customerID, kernel.NewUUID(), cart.DefaultTTL)
		require.NoError(t, err)
		require.NoError(t, activeCart.AddItem(itemID, 2, mustMoney(t, 500)))

		cartRepo := &MockCartRepository{}
		cartRepo.On("GetActiveByCustomer", ctx, customerID).Return(activeCart, nil).Once()
		cartRepo.On("Update", ctx, activeCart).Return(nil).Once()

		uow, uowFactory := newCartUoW(cartRepo)
		uow.On("Commit", ctx).Return(nil).Once()

		handler := commands.NewUpdateCartItemQuantityCommandHandler(uowFactory)

		cmd, err := commands.NewUpdateCartItemQuantityCommand(customerID, itemID, 0)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		assert.True(t, activeCart.IsEmpty())
	})

	t.Run("negative quantity is rejected by the command", func(t *testing.T) {
		_, err := commands.NewUpdateCartItemQuantityCommand(kernel.NewUUID(), kernel.NewUUID(), -1)

		require.Error(t, err)
	})
}
