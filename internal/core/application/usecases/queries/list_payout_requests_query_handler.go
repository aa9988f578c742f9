package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// ListPayoutRequestsQueryHandler retrieves the payout review read model from
// the remote authority.
type ListPayoutRequestsQueryHandler struct {
	payouts ports.PayoutGateway
}

// NewListPayoutRequestsQueryHandler creates a handler for payout listing
// queries.
func NewListPayoutRequestsQueryHandler(payouts ports.PayoutGateway) ListPayoutRequestsQueryHandler {
	return ListPayoutRequestsQueryHandler{payouts: payouts}
}

// Handle executes the query and maps each request to its summary row.
func (h ListPayoutRequestsQueryHandler) Handle(
	ctx context.Context,
	query ListPayoutRequestsQuery,
) (ports.Page[PayoutRequestSummary], error) {
	if err := query.Validate(); err != nil {
		return ports.Page[PayoutRequestSummary]{}, err
	}

	page, err := h.payouts.ListRequests(ctx, ports.PayoutFilter{
		Kind:   query.Kind(),
		Status: query.Status(),
		Page:   query.Page(),
		Limit:  query.Limit(),
	})
	if err != nil {
		return ports.Page[PayoutRequestSummary]{}, err
	}

	summaries := make([]PayoutRequestSummary, 0, len(page.Items))
	for _, request := range page.Items {
		summaries = append(summaries, PayoutRequestSummary{
			ID:            request.ID(),
			RequesterID:   request.RequesterID(),
			Kind:          request.Kind(),
			Status:        request.Status(),
			Amount:        request.Amount(),
			MaskedAccount: request.BankAccount().Masked(),
			OrderID:       request.OrderID(),
			RequestedAt:   request.RequestedAt(),
			CompletedAt:   request.CompletedAt(),
		})
	}

	return ports.Page[PayoutRequestSummary]{
		Items:      summaries,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}, nil
}
