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
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// OrderGateway calls the platform order API. Responses carry the full order
// aggregate with server-computed fees and timestamps; callers replace their
// local copy with the returned one.
type OrderGateway struct {
	client *Client
}

// NewOrderGateway creates an order gateway on the shared client.
func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

type itemSnapshotDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

type chargesDTO struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	ServiceFee  int64 `json:"serviceFee"`
	Total       int64 `json:"total"`
}

type addressDTO struct {
	Street string `json:"street"`
	Floor  string `json:"floor,omitempty"`
	Door   string `json:"door,omitempty"`
}

type statusChangeDTO struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type orderDTO struct {
	ID                 string            `json:"id"`
	OriginID           string            `json:"originId"`
	CustomerID         string            `json:"customerId"`
	Items              []itemSnapshotDTO `json:"items"`
	Status             string            `json:"status"`
	Charges            chargesDTO        `json:"charges"`
	Address            addressDTO        `json:"address"`
	DriverID           *string           `json:"driverId,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	DeliveredAt        *time.Time        `json:"deliveredAt,omitempty"`
	CancellationReason string            `json:"cancellationReason,omitempty"`
	RatingSubmitted    bool              `json:"ratingSubmitted"`
	History            []statusChangeDTO `json:"history"`
}

func orderFromDomain(o *order.Order) orderDTO {
	items := make([]itemSnapshotDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemSnapshotDTO{
			ID:        item.ID().String(),
			Name:      item.Name(),
			UnitPrice: int64(item.UnitPrice()),
			Quantity:  item.Quantity(),
		})
	}

	history := make([]statusChangeDTO, 0, len(o.History()))
	for _, change := range o.History() {
		history = append(history, statusChangeDTO{
			Status: change.Status().String(),
			At:     change.At(),
		})
	}

	var driverID *string
	if id := o.Driver(); id != nil {
		s := id.String()
		driverID = &s
	}

	return orderDTO{
		ID:         o.ID().String(),
		OriginID:   o.OriginID().String(),
		CustomerID: o.CustomerID().String(),
		Items:      items,
		Status:     o.Status().String(),
		Charges: chargesDTO{
			Subtotal:    int64(o.Charges().Subtotal()),
			DeliveryFee: int64(o.Charges().DeliveryFee()),
			ServiceFee:  int64(o.Charges().ServiceFee()),
			Total:       int64(o.Charges().Total()),
		},
		Address: addressDTO{
			Street: o.Address().Street(),
			Floor:  o.Address().Floor(),
			Door:   o.Address().Door(),
		},
		DriverID:           driverID,
		CreatedAt:          o.CreatedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancellationReason: o.CancellationReason(),
		RatingSubmitted:    o.RatingSubmitted(),
		History:            history,
	}
}

func orderToDomain(dto orderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	originID, err := kernel.UUIDFromString(dto.OriginID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromString(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSnapshot, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromString(itemDTO.ID)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItemSnapshot(
			itemID, itemDTO.Name, kernel.Money(itemDTO.UnitPrice), itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	charges, err := order.RestoreCharges(
		kernel.Money(dto.Charges.Subtotal),
		kernel.Money(dto.Charges.DeliveryFee),
		kernel.Money(dto.Charges.ServiceFee),
		kernel.Money(dto.Charges.Total),
	)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(dto.Address.Street, dto.Address.Floor, dto.Address.Door)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromString(*dto.DriverID)
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	history := make([]order.StatusChange, 0, len(dto.History))
	for _, changeDTO := range dto.History {
		changeStatus, changeErr := order.StatusFromString(changeDTO.Status)
		if changeErr != nil {
			return nil, changeErr
		}
		history = append(history, order.NewStatusChange(changeStatus, changeDTO.At))
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		OriginID:           originID,
		CustomerID:         customerID,
		Items:              items,
		Status:             status,
		Charges:            charges,
		Address:            address,
		DriverID:           driverID,
		CreatedAt:          dto.CreatedAt,
		DeliveredAt:        dto.DeliveredAt,
		CancellationReason: dto.CancellationReason,
		RatingSubmitted:    dto.RatingSubmitted,
		History:            history,
	})
}

func decodeOrder(operation string, data json.RawMessage) (*order.Order, error) {
	var dto orderDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", operation, err)
	}
	return orderToDomain(dto)
}

// CreateOrder submits a checkout draft and returns the authoritative order.
func (g *OrderGateway) CreateOrder(ctx context.Context, draft *order.Order) (*order.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	data, err := g.client.do(ctx, "createOrder", http.MethodPost,
		"/api/v1/orders", orderFromDomain(draft))
	if err != nil {
		return nil, err
	}
	return decodeOrder("createOrder", data)
}

// ListOrders fetches a page of the customer's orders.
func (g *OrderGateway) ListOrders(
	ctx context.Context,
	customerID kernel.UUID,
	filter ports.OrderFilter,
) (ports.Page[*order.Order], error) {
	params := url.Values{}
	params.Set("customerId", customerID.String())
	if filter.Status != order.Unknown {
		params.Set("status", filter.Status.String())
	}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}

	data, err := g.client.do(ctx, "listOrders", http.MethodGet,
		"/api/v1/orders?"+params.Encode(), nil)
	if err != nil {
		return ports.Page[*order.Order]{}, err
	}

	var page pageDTO[orderDTO]
	if err = json.Unmarshal(data, &page); err != nil {
		return ports.Page[*order.Order]{}, fmt.Errorf("decode listOrders response: %w", err)
	}

	orders := make([]*order.Order, 0, len(page.Items))
	for _, dto := range page.Items {
		o, itemErr := orderToDomain(dto)
		if itemErr != nil {
			return ports.Page[*order.Order]{}, itemErr
		}
		orders = append(orders, o)
	}

	return ports.Page[*order.Order]{
		Items:      orders,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}, nil
}

// GetOrder fetches one order by id.
func (g *OrderGateway) GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	data, err := g.client.do(ctx, "getOrder", http.MethodGet,
		"/api/v1/orders/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	return decodeOrder("getOrder", data)
}

// AdvanceOrder requests a status change on behalf of an actor.
func (g *OrderGateway) AdvanceOrder(
	ctx context.Context,
	id kernel.UUID,
	actor order.Actor,
	to order.Status,
) (*order.Order, error) {
	data, err := g.client.do(ctx, "advanceOrder", http.MethodPost,
		"/api/v1/orders/"+id.String()+"/advance",
		map[string]string{"actor": actor.String(), "to": to.String()})
	if err != nil {
		return nil, err
	}
	return decodeOrder("advanceOrder", data)
}

// CancelOrder cancels an order with a reason on behalf of an actor.
func (g *OrderGateway) CancelOrder(
	ctx context.Context,
	id kernel.UUID,
	actor order.Actor,
	reason string,
) (*order.Order, error) {
	data, err := g.client.do(ctx, "cancelOrder", http.MethodPost,
		"/api/v1/orders/"+id.String()+"/cancel",
		map[string]string{"actor": actor.String(), "reason": reason})
	if err != nil {
		return nil, err
	}
	return decodeOrder("cancelOrder", data)
}

// AssignDriver assigns a driver to an order.
func (g *OrderGateway) AssignDriver(ctx context.Context, id, driverID kernel.UUID) (*order.Order, error) {
	data, err := g.client.do(ctx, "assignDriver", http.MethodPost,
		"/api/v1/orders/"+id.String()+"/assign-driver",
		map[string]string{"driverId": driverID.String()})
	if err != nil {
		return nil, err
	}
	return decodeOrder("assignDriver", data)
}
