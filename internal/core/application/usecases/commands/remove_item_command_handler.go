package commands

import (
	"context"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"
)

// RemoveItemCommandHandler removes a line item optimistically and reconciles
// against the cart authority.
type RemoveItemCommandHandler struct {
	store      CartStore
	gateway    ports.CartGateway
	controller *optimistic.Controller[[]cart.Group]
}

// NewRemoveItemCommandHandler creates a handler for cart item removal.
func NewRemoveItemCommandHandler(
	store CartStore,
	gateway ports.CartGateway,
	controller *optimistic.Controller[[]cart.Group],
) RemoveItemCommandHandler {
	return RemoveItemCommandHandler{
		store:      store,
		gateway:    gateway,
		controller: controller,
	}
}

// Handle enqueues the optimistic removal behind any in-flight edit of the
// same cart.
func (h *RemoveItemCommandHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if quantityOf(h.store.Groups(), cmd.ItemID()) == 0 {
		return errs.NewObjectNotFoundError("itemID", cmd.ItemID())
	}

	var prior []cart.Group

	return h.controller.Enqueue(ctx, optimistic.Mutation[[]cart.Group]{
		EntityID: cmd.CustomerID().String(),
		Apply: func() []cart.Group {
			prior = h.store.Groups()
			updated := cart.RemoveItem(prior, cmd.ItemID())
			h.store.Replace(updated)
			return updated
		},
		Remote: func(ctx context.Context) ([]cart.Group, error) {
			items, err := h.gateway.RemoveItem(ctx, cmd.CustomerID(), cmd.ItemID())
			if err != nil {
				return nil, err
			}
			return cart.Aggregate(items), nil
		},
		Commit: func(authoritative []cart.Group) {
			h.store.Replace(authoritative)
		},
		Revert: func(failure error) {
			h.store.Replace(prior)
			h.store.ReportFailure(failure)
		},
	})
}
