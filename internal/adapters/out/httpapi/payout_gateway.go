package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/core/ports"
)

// PayoutGateway calls the platform payout API for withdrawal and refund
// requests.
type PayoutGateway struct {
	client *Client
}

// NewPayoutGateway creates a payout gateway on the shared client.
func NewPayoutGateway(client *Client) *PayoutGateway {
	return &PayoutGateway{client: client}
}

type bankAccountDTO struct {
	BankID        string `json:"bankId"`
	AccountNumber string `json:"accountNumber"`
	HolderName    string `json:"holderName"`
}

type payoutRequestDTO struct {
	ID          string         `json:"id"`
	RequesterID string         `json:"requesterId"`
	Kind        string         `json:"kind"`
	Amount      int64          `json:"amount"`
	BankAccount bankAccountDTO `json:"bankAccount"`
	Status      string         `json:"status"`
	OrderID     *string        `json:"orderId,omitempty"`
	RequestedAt time.Time      `json:"requestedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

func payoutRequestFromDomain(r *payout.Request) payoutRequestDTO {
	var orderID *string
	if id := r.OrderID(); id != nil {
		s := id.String()
		orderID = &s
	}

	return payoutRequestDTO{
		ID:          r.ID().String(),
		RequesterID: r.RequesterID().String(),
		Kind:        r.Kind().String(),
		Amount:      int64(r.Amount()),
		BankAccount: bankAccountDTO{
			BankID:        r.BankAccount().BankID(),
			AccountNumber: r.BankAccount().AccountNumber(),
			HolderName:    r.BankAccount().HolderName(),
		},
		Status:      r.Status().String(),
		OrderID:     orderID,
		RequestedAt: r.RequestedAt(),
		CompletedAt: r.CompletedAt(),
	}
}

func payoutRequestToDomain(dto payoutRequestDTO) (*payout.Request, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromString(dto.RequesterID)
	if err != nil {
		return nil, err
	}
	kind, err := payout.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}
	status, err := payout.RequestStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	account, err := payout.NewBankAccount(
		dto.BankAccount.BankID, dto.BankAccount.AccountNumber, dto.BankAccount.HolderName)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromString(*dto.OrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return payout.RestoreRequest(payout.RestoreRequestParams{
		ID:          id,
		RequesterID: requesterID,
		Kind:        kind,
		Amount:      kernel.Money(dto.Amount),
		BankAccount: account,
		Status:      status,
		OrderID:     orderID,
		RequestedAt: dto.RequestedAt,
		CompletedAt: dto.CompletedAt,
	})
}

func decodePayoutRequest(operation string, data json.RawMessage) (*payout.Request, error) {
	var dto payoutRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", operation, err)
	}
	return payoutRequestToDomain(dto)
}

// CreateRequest submits a new request and returns the authoritative copy.
func (g *PayoutGateway) CreateRequest(ctx context.Context, request *payout.Request) (*payout.Request, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	data, err := g.client.do(ctx, "createRequest", http.MethodPost,
		"/api/v1/payout-requests", payoutRequestFromDomain(request))
	if err != nil {
		return nil, err
	}
	return decodePayoutRequest("createRequest", data)
}

// ListRequests fetches a page of requests.
func (g *PayoutGateway) ListRequests(
	ctx context.Context,
	filter ports.PayoutFilter,
) (ports.Page[*payout.Request], error) {
	params := url.Values{}
	if filter.Kind != payout.KindUnknown {
		params.Set("kind", filter.Kind.String())
	}
	if filter.Status != payout.StatusUnknown {
		params.Set("status", filter.Status.String())
	}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/api/v1/payout-requests"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	data, err := g.client.do(ctx, "listRequests", http.MethodGet, path, nil)
	if err != nil {
		return ports.Page[*payout.Request]{}, err
	}

	var page pageDTO[payoutRequestDTO]
	if err = json.Unmarshal(data, &page); err != nil {
		return ports.Page[*payout.Request]{}, fmt.Errorf("decode listRequests response: %w", err)
	}

	requests := make([]*payout.Request, 0, len(page.Items))
	for _, dto := range page.Items {
		request, itemErr := payoutRequestToDomain(dto)
		if itemErr != nil {
			return ports.Page[*payout.Request]{}, itemErr
		}
		requests = append(requests, request)
	}

	return ports.Page[*payout.Request]{
		Items:      requests,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}, nil
}

// GetRequest fetches one request by id.
func (g *PayoutGateway) GetRequest(ctx context.Context, id kernel.UUID) (*payout.Request, error) {
	data, err := g.client.do(ctx, "getRequest", http.MethodGet,
		"/api/v1/payout-requests/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	return decodePayoutRequest("getRequest", data)
}

// UpdateStatus moves a request to a new status.
func (g *PayoutGateway) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	status payout.Status,
) (*payout.Request, error) {
	data, err := g.client.do(ctx, "updateStatus", http.MethodPatch,
		"/api/v1/payout-requests/"+id.String(),
		map[string]string{"status": status.String()})
	if err != nil {
		return nil, err
	}
	return decodePayoutRequest("updateStatus", data)
}
