package commands

import (
	"context"
	"time"
)

// SettlePayoutsCommandHandler sweeps pending withdrawals into processing
// inside one transaction. Completion or failure of the transfer itself is
// reported later by the bank integration and lands as a separate update.
type SettlePayoutsCommandHandler struct {
	uowFactory PayoutUoWFactory
	now        func() time.Time
}

// NewSettlePayoutsCommandHandler creates a handler for the settlement sweep.
func NewSettlePayoutsCommandHandler(uowFactory PayoutUoWFactory) SettlePayoutsCommandHandler {
	return SettlePayoutsCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the sweep and returns how many withdrawals entered
// settlement.
func (h *SettlePayoutsCommandHandler) Handle(ctx context.Context, cmd SettlePayoutsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payoutRepo := uow.PayoutRepository()
	pending, err := payoutRepo.GetAllPendingWithdrawals(ctx)
	if err != nil {
		return 0, err
	}

	settledAt := h.now()
	for _, request := range pending {
		if err = request.MarkProcessing(settledAt); err != nil {
			return 0, err
		}
		if err = payoutRepo.Update(ctx, request); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(pending), nil
}
