package commands

import (
	"context"
)

// UpdateCartItemQuantityCommandHandler sets a line's quantity in the
// customer's active cart. Quantity zero removes the line, matching an
// explicit removal.
type UpdateCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpdateCartItemQuantityCommandHandler creates a handler for quantity
// updates.
func NewUpdateCartItemQuantityCommandHandler(uowFactory CartUoWFactory) UpdateCartItemQuantityCommandHandler {
	return UpdateCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update. Returns an ObjectNotFoundError when the
// customer has no active cart or the cart has no such line.
func (h *UpdateCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemQuantityCommand) error {
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

	if err = activeCart.UpdateQuantity(cmd.ItemID(), cmd.Quantity()); err != nil {
		return err
	}
	if err = repo.Update(ctx, activeCart); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
