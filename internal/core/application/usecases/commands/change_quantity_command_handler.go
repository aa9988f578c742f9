package commands

import (
	"context"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"
)

// ChangeQuantityCommandHandler applies a quantity change optimistically and
// reconciles it against the cart authority. The store shows the adjusted cart
// immediately; on remote failure the previous grouping is restored.
type ChangeQuantityCommandHandler struct {
	store      CartStore
	gateway    ports.CartGateway
	controller *optimistic.Controller[[]cart.Group]
}

// NewChangeQuantityCommandHandler creates a handler for cart quantity edits.
func NewChangeQuantityCommandHandler(
	store CartStore,
	gateway ports.CartGateway,
	controller *optimistic.Controller[[]cart.Group],
) ChangeQuantityCommandHandler {
	return ChangeQuantityCommandHandler{
		store:      store,
		gateway:    gateway,
		controller: controller,
	}
}

// Handle enqueues the optimistic quantity change. The cart's entity id is its
// owner, so edits against the same cart are serialized while edits against
// different carts run independently.
func (h *ChangeQuantityCommandHandler) Handle(ctx context.Context, cmd ChangeQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if quantityOf(h.store.Groups(), cmd.ItemID()) == 0 {
		return errs.NewObjectNotFoundError("itemID", cmd.ItemID())
	}

	var prior []cart.Group
	var quantity int

	return h.controller.Enqueue(ctx, optimistic.Mutation[[]cart.Group]{
		EntityID: cmd.CustomerID().String(),
		Apply: func() []cart.Group {
			prior = h.store.Groups()
			updated := cart.ChangeQuantity(prior, cmd.ItemID(), cmd.Delta())
			quantity = quantityOf(updated, cmd.ItemID())
			h.store.Replace(updated)
			return updated
		},
		Remote: func(ctx context.Context) ([]cart.Group, error) {
			items, err := h.gateway.UpdateQuantity(ctx, cmd.CustomerID(), cmd.ItemID(), quantity)
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

func quantityOf(groups []cart.Group, itemID kernel.UUID) int {
	for _, group := range groups {
		for _, item := range group.Items() {
			if item.ID().IsEqual(itemID) {
				return item.Quantity()
			}
		}
	}
	return 0
}
