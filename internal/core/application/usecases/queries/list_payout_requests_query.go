package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrListPayoutRequestsQueryIsNotConstructed = errors.New(
	"ListPayoutRequestsQuery must be created via NewListPayoutRequestsQuery constructor",
)

// ListPayoutRequestsQuery retrieves a page of withdrawal and refund requests
// for the admin console. Zero kind and status mean no filtering.
type ListPayoutRequestsQuery struct {
	kind   payout.Kind
	status payout.Status
	page   int
	limit  int

	guard guard.ConstructorGuard
}

// NewListPayoutRequestsQuery creates a payout listing query.
func NewListPayoutRequestsQuery(kind payout.Kind, status payout.Status, page, limit int) (ListPayoutRequestsQuery, error) {
	if kind != payout.KindUnknown {
		if err := kind.Validate(); err != nil {
			return ListPayoutRequestsQuery{}, err
		}
	}
	if page < 0 || limit < 0 {
		return ListPayoutRequestsQuery{}, errs.NewValueIsInvalidError("pagination")
	}

	return ListPayoutRequestsQuery{
		kind:   kind,
		status: status,
		page:   page,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListPayoutRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListPayoutRequestsQueryIsNotConstructed)
}

// Kind returns the kind filter, or the zero kind for no filtering.
func (q ListPayoutRequestsQuery) Kind() payout.Kind { return q.kind }

// Status returns the status filter, or the zero status for no filtering.
func (q ListPayoutRequestsQuery) Status() payout.Status { return q.status }

// Page returns the requested page number.
func (q ListPayoutRequestsQuery) Page() int { return q.page }

// Limit returns the requested page size.
func (q ListPayoutRequestsQuery) Limit() int { return q.limit }

// PayoutRequestSummary is one row of the payout review list. The destination
// account is already masked; the full number never leaves the aggregate.
type PayoutRequestSummary struct {
	ID            kernel.UUID
	RequesterID   kernel.UUID
	Kind          payout.Kind
	Status        payout.Status
	Amount        kernel.Money
	MaskedAccount string
	OrderID       *kernel.UUID
	RequestedAt   time.Time
	CompletedAt   *time.Time
}
