package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"
)

// PayoutRepository defines the persistence contract for withdrawal and
// refund requests in the admin console deployment.
type PayoutRepository interface {
	// Add persists a new request aggregate.
	Add(ctx context.Context, aggregate *payout.Request) error

	// Update persists changes to an existing request aggregate.
	Update(ctx context.Context, aggregate *payout.Request) error

	// Get retrieves a request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payout.Request, error)

	// GetPage retrieves a page of requests, newest first, optionally
	// filtered by kind and status.
	GetPage(ctx context.Context, filter PayoutFilter) (Page[*payout.Request], error)

	// GetAllPendingWithdrawals retrieves every withdrawal awaiting
	// settlement. Used by the settlement job.
	GetAllPendingWithdrawals(ctx context.Context) ([]*payout.Request, error)
}
