package commands

import (
	"context"
	"errors"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/cart"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/pkg/errs"
)

// AddCartItemCommandHandler adds items to the customer's active cart,
// creating the cart on first use. A customer has one active cart at a time
// and it is bound to one food place: adding an item from a different food
// place starts a fresh cart and retires the old one.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the addition.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CartRepository()

	activeCart, err := repo.GetActiveByCustomer(ctx, cmd.CustomerID())
	switch {
	case err == nil && !activeCart.FoodPlaceID().IsEqual(cmd.FoodPlaceID()):
		// switching food place retires the old basket
		if err = activeCart.MarkUsed(); err != nil {
			return err
		}
		if err = repo.Update(ctx, activeCart); err != nil {
			return err
		}
		activeCart = nil
	case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
		return err
	case err != nil:
		activeCart = nil
	}

	created := false
	if activeCart == nil {
		activeCart, err = cart.NewCart(kernel.NewUUID(), cmd.CustomerID(), cmd.FoodPlaceID(), cart.DefaultTTL)
		if err != nil {
			return err
		}
		created = true
	}

	if err = activeCart.AddItem(cmd.ItemID(), cmd.Quantity(), cmd.UnitPrice()); err != nil {
		return err
	}

	if created {
		err = repo.Add(ctx, activeCart)
	} else {
		err = repo.Update(ctx, activeCart)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
