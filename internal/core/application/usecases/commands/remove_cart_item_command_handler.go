package commands

import (
	"context"
)

// RemoveCartItemCommandHandler removes a whole line from the customer's
// active cart.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewRemoveCartItemCommandHandler creates a handler for cart removals.
func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal. Returns an ObjectNotFoundError when the
// customer has no active cart or the cart has no such line.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
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
	if err != nil {
		return err
	}

	if err = activeCart.RemoveItem(cmd.ItemID()); err != nil {
		return err
	}
	if err = repo.Update(ctx, activeCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
