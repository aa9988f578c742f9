package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
)

// CartGateway calls the platform cart API. Every mutation returns the full
// authoritative line-item list for wholesale replacement.
type CartGateway struct {
	client *Client
}

// NewCartGateway creates a cart gateway on the shared client.
func NewCartGateway(client *Client) *CartGateway {
	return &CartGateway{client: client}
}

type originDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Hours string `json:"hours"`
}

type lineItemDTO struct {
	ID        string    `json:"id"`
	Origin    originDTO `json:"origin"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	ImageRef  string    `json:"imageRef"`
}

func lineItemsToDomain(dtos []lineItemDTO) ([]cart.LineItem, error) {
	items := make([]cart.LineItem, 0, len(dtos))
	for _, dto := range dtos {
		originID, err := kernel.UUIDFromString(dto.Origin.ID)
		if err != nil {
			return nil, err
		}
		origin, err := cart.NewOrigin(originID, dto.Origin.Name, dto.Origin.Hours)
		if err != nil {
			return nil, err
		}
		itemID, err := kernel.UUIDFromString(dto.ID)
		if err != nil {
			return nil, err
		}
		item, err := cart.NewLineItem(
			itemID, origin, dto.Name, kernel.Money(dto.UnitPrice), dto.Quantity, dto.ImageRef)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (g *CartGateway) decodeCart(operation string, data json.RawMessage) ([]cart.LineItem, error) {
	var dtos []lineItemDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", operation, err)
	}
	return lineItemsToDomain(dtos)
}

// ReadCart fetches the customer's current line items.
func (g *CartGateway) ReadCart(ctx context.Context, customerID kernel.UUID) ([]cart.LineItem, error) {
	data, err := g.client.do(ctx, "readCart", http.MethodGet,
		"/api/v1/customers/"+customerID.String()+"/cart", nil)
	if err != nil {
		return nil, err
	}
	return g.decodeCart("readCart", data)
}

// UpdateQuantity sets an item's absolute quantity.
func (g *CartGateway) UpdateQuantity(
	ctx context.Context,
	customerID, itemID kernel.UUID,
	quantity int,
) ([]cart.LineItem, error) {
	data, err := g.client.do(ctx, "updateQuantity", http.MethodPatch,
		"/api/v1/customers/"+customerID.String()+"/cart/items/"+itemID.String(),
		map[string]int{"quantity": quantity})
	if err != nil {
		return nil, err
	}
	return g.decodeCart("updateQuantity", data)
}

// RemoveItem removes an item from the cart.
func (g *CartGateway) RemoveItem(
	ctx context.Context,
	customerID, itemID kernel.UUID,
) ([]cart.LineItem, error) {
	data, err := g.client.do(ctx, "removeItem", http.MethodDelete,
		"/api/v1/customers/"+customerID.String()+"/cart/items/"+itemID.String(), nil)
	if err != nil {
		return nil, err
	}
	return g.decodeCart("removeItem", data)
}

// Clear empties the cart after a completed checkout.
func (g *CartGateway) Clear(ctx context.Context, customerID kernel.UUID) error {
	_, err := g.client.do(ctx, "clearCart", http.MethodDelete,
		"/api/v1/customers/"+customerID.String()+"/cart", nil)
	return err
}
