package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
)

// pageDTO is the wire shape of every paginated listing.
type pageDTO[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type orderSummaryDTO struct {
	ID        string    `json:"id"`
	OriginID  string    `json:"originId"`
	Status    string    `json:"status"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

func orderSummaryFromModel(summary queries.OrderSummary) orderSummaryDTO {
	return orderSummaryDTO{
		ID:        summary.ID.String(),
		OriginID:  summary.OriginID.String(),
		Status:    summary.Status.String(),
		Total:     int64(summary.Total),
		ItemCount: summary.ItemCount,
		CreatedAt: summary.CreatedAt,
	}
}

type payoutSummaryDTO struct {
	ID            string     `json:"id"`
	RequesterID   string     `json:"requesterId"`
	Kind          string     `json:"kind"`
	Status        string     `json:"status"`
	Amount        int64      `json:"amount"`
	MaskedAccount string     `json:"maskedAccount"`
	OrderID       *string    `json:"orderId,omitempty"`
	RequestedAt   time.Time  `json:"requestedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

func payoutSummaryFromModel(summary queries.PayoutRequestSummary) payoutSummaryDTO {
	var orderID *string
	if summary.OrderID != nil {
		raw := summary.OrderID.String()
		orderID = &raw
	}

	return payoutSummaryDTO{
		ID:            summary.ID.String(),
		RequesterID:   summary.RequesterID.String(),
		Kind:          summary.Kind.String(),
		Status:        summary.Status.String(),
		Amount:        int64(summary.Amount),
		MaskedAccount: summary.MaskedAccount,
		OrderID:       orderID,
		RequestedAt:   summary.RequestedAt,
		CompletedAt:   summary.CompletedAt,
	}
}

type trackingStepDTO struct {
	Status      string     `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	IsActive    bool       `json:"isActive"`
	IsCancelled bool       `json:"isCancelled"`
}

type trackingDTO struct {
	OrderID string            `json:"orderId"`
	Status  string            `json:"status"`
	Steps   []trackingStepDTO `json:"steps"`
}

func trackingFromModel(response queries.TrackOrderQueryResponse) trackingDTO {
	steps := make([]trackingStepDTO, 0, len(response.Steps))
	for _, step := range response.Steps {
		steps = append(steps, trackingStepDTO{
			Status:      step.Status.String(),
			Title:       step.Title,
			Description: step.Description,
			Timestamp:   step.Timestamp,
			IsCompleted: step.IsCompleted,
			IsActive:    step.IsActive,
			IsCancelled: step.IsCancelled,
		})
	}

	return trackingDTO{
		OrderID: response.OrderID.String(),
		Status:  response.Status.String(),
		Steps:   steps,
	}
}
