package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"orderflow/internal/core/domain/model/kernel"
)

// MenuGateway calls the platform menu API. Only availability moves through
// this engine; the menu content itself is owned elsewhere.
type MenuGateway struct {
	client *Client
}

// NewMenuGateway creates a menu gateway on the shared client.
func NewMenuGateway(client *Client) *MenuGateway {
	return &MenuGateway{client: client}
}

// SetAvailability marks a menu item available or sold out and returns the
// authoritative flag.
func (g *MenuGateway) SetAvailability(ctx context.Context, itemID kernel.UUID, available bool) (bool, error) {
	data, err := g.client.do(ctx, "setAvailability", http.MethodPut,
		"/api/v1/menu-items/"+itemID.String()+"/availability",
		map[string]bool{"available": available})
	if err != nil {
		return false, err
	}

	var response struct {
		Available bool `json:"available"`
	}
	if err = json.Unmarshal(data, &response); err != nil {
		return false, fmt.Errorf("decode setAvailability response: %w", err)
	}
	return response.Available, nil
}
