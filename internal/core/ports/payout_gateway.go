package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"
)

// PayoutFilter narrows payout/refund request listings.
type PayoutFilter struct {
	Kind   payout.Kind
	Status payout.Status
	Page   int
	Limit  int
}

// PayoutGateway is the remote boundary for withdrawal and refund requests.
type PayoutGateway interface {
	// CreateRequest submits a new request and returns the authoritative copy.
	CreateRequest(ctx context.Context, request *payout.Request) (*payout.Request, error)

	// ListRequests fetches a page of requests.
	ListRequests(ctx context.Context, filter PayoutFilter) (Page[*payout.Request], error)

	// GetRequest fetches one request by id.
	GetRequest(ctx context.Context, id kernel.UUID) (*payout.Request, error)

	// UpdateStatus moves a request to a new status. Used by admin review and
	// by the settlement job.
	UpdateStatus(ctx context.Context, id kernel.UUID, status payout.Status) (*payout.Request, error)
}
