package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PayoutSettlementJob manages the scheduled settlement of approved
// withdrawals. Each run moves every pending withdrawal into processing so the
// banking integration can pick it up.
type PayoutSettlementJob struct {
	handler  commands.SettlePayoutsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPayoutSettlementJob creates a new job for settling payouts.
// Uses SettlePayoutsCommandHandler to process the sweep on the given cron
// schedule.
func NewPayoutSettlementJob(
	handler commands.SettlePayoutsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *PayoutSettlementJob {
	return &PayoutSettlementJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "payout_settlement_job"),
	}
}

// Start begins the payout settlement job on its configured schedule.
func (j *PayoutSettlementJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		settled, err := j.handler.Handle(ctx, commands.NewSettlePayoutsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Payout settlement job failed", "error", err)
			return
		}
		if settled > 0 {
			j.logger.InfoContext(ctx, "Payout settlement sweep finished", "settled", settled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payout settlement job started",
		"schedule", j.schedule)
	return nil
}

// Stop stops the payout settlement job.
func (j *PayoutSettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payout settlement job stopped")
}
