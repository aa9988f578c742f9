package commands

import (
	"context"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/optimistic"
)

// ToggleAvailabilityCommandHandler flips a menu item's availability
// optimistically. Toggles for the same item are serialized so rapid flips
// never interleave; the last authoritative answer wins.
type ToggleAvailabilityCommandHandler struct {
	store      AvailabilityStore
	gateway    ports.MenuGateway
	controller *optimistic.Controller[bool]
}

// NewToggleAvailabilityCommandHandler creates a handler for availability toggles.
func NewToggleAvailabilityCommandHandler(
	store AvailabilityStore,
	gateway ports.MenuGateway,
	controller *optimistic.Controller[bool],
) ToggleAvailabilityCommandHandler {
	return ToggleAvailabilityCommandHandler{
		store:      store,
		gateway:    gateway,
		controller: controller,
	}
}

// Handle enqueues the optimistic toggle keyed by menu item id.
func (h *ToggleAvailabilityCommandHandler) Handle(ctx context.Context, cmd ToggleAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var prior, known bool
	return h.controller.Enqueue(ctx, optimistic.Mutation[bool]{
		EntityID: cmd.ItemID().String(),
		Apply: func() bool {
			// The rollback value is whatever the store held at Apply time;
			// a store already at the commanded value must stay there on
			// failure, not flip.
			prior, known = h.store.Get(cmd.ItemID())
			h.store.Set(cmd.ItemID(), cmd.Available())
			return cmd.Available()
		},
		Remote: func(ctx context.Context) (bool, error) {
			return h.gateway.SetAvailability(ctx, cmd.ItemID(), cmd.Available())
		},
		Commit: func(authoritative bool) {
			h.store.Set(cmd.ItemID(), authoritative)
		},
		Revert: func(failure error) {
			if known {
				h.store.Set(cmd.ItemID(), prior)
			} else {
				h.store.Set(cmd.ItemID(), !cmd.Available())
			}
			h.store.ReportFailure(cmd.ItemID(), failure)
		},
	})
}
