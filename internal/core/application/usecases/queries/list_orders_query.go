package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a page of a customer's orders, optionally
// narrowed to one status. A zero status means no filtering; zero page and
// limit defer to the gateway's defaults.
type ListOrdersQuery struct {
	customerID kernel.UUID
	status     order.Status
	page       int
	limit      int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates an order listing query.
func NewListOrdersQuery(customerID kernel.UUID, status order.Status, page, limit int) (ListOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if page < 0 || limit < 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("pagination")
	}

	return ListOrdersQuery{
		customerID: customerID,
		status:     status,
		page:       page,
		limit:      limit,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer whose orders are listed.
func (q ListOrdersQuery) CustomerID() kernel.UUID { return q.customerID }

// Status returns the status filter, or the zero status for no filtering.
func (q ListOrdersQuery) Status() order.Status { return q.status }

// Page returns the requested page number.
func (q ListOrdersQuery) Page() int { return q.page }

// Limit returns the requested page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

// OrderSummary is one row of the order history list.
type OrderSummary struct {
	ID        kernel.UUID
	OriginID  kernel.UUID
	Status    order.Status
	Total     kernel.Money
	ItemCount int
	CreatedAt time.Time
}
