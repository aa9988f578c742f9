package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"
)

// AdvanceOrderCommandHandler applies a status change optimistically and
// reconciles against the order authority. Edges the transition table or the
// actor-capability table reject fail locally, before any remote call.
type AdvanceOrderCommandHandler struct {
	store      OrderStore
	gateway    ports.OrderGateway
	controller *optimistic.Controller[*order.Order]
	now        func() time.Time
}

// NewAdvanceOrderCommandHandler creates a handler for order status actions.
func NewAdvanceOrderCommandHandler(
	store OrderStore,
	gateway ports.OrderGateway,
	controller *optimistic.Controller[*order.Order],
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		store:      store,
		gateway:    gateway,
		controller: controller,
		now:        time.Now,
	}
}

// Handle validates the transition locally, then enqueues the optimistic
// status change keyed by order id.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	current, ok := h.store.Get(cmd.OrderID())
	if !ok {
		return errs.NewObjectNotFoundError("orderID", cmd.OrderID())
	}
	if err := current.Clone().Advance(cmd.Actor(), cmd.To(), h.now()); err != nil {
		return err
	}

	var prior *order.Order
	return h.controller.Enqueue(ctx, optimistic.Mutation[*order.Order]{
		EntityID: cmd.OrderID().String(),
		Apply: func() *order.Order {
			// A queued mutation runs after its predecessor reconciles, so
			// the rollback snapshot and the speculative state come from the
			// store as it is now, not as Handle saw it.
			prior = latestOrder(h.store, cmd.OrderID(), current)
			speculative := prior.Clone()
			if err := speculative.Advance(cmd.Actor(), cmd.To(), h.now()); err != nil {
				return prior
			}
			h.store.Replace(speculative)
			return speculative
		},
		Remote: func(ctx context.Context) (*order.Order, error) {
			return h.gateway.AdvanceOrder(ctx, cmd.OrderID(), cmd.Actor(), cmd.To())
		},
		Commit: func(authoritative *order.Order) {
			h.store.Replace(authoritative)
		},
		Revert: func(failure error) {
			h.store.Replace(prior)
			h.store.ReportFailure(cmd.OrderID(), failure)
		},
	})
}

// latestOrder re-reads the store at Apply time. The fallback is the order as
// Handle saw it, used only if the store dropped the entry while queued.
func latestOrder(store OrderStore, id kernel.UUID, fallback *order.Order) *order.Order {
	if latest, ok := store.Get(id); ok {
		return latest
	}
	return fallback
}
