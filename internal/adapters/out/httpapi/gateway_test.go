package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderflow/internal/adapters/out/httpapi"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredentials string

func (c staticCredentials) Token(context.Context) (string, error) {
	return string(c), nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *httpapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return httpapi.NewClient(server.URL, staticCredentials("test-token"))
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	err = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    json.RawMessage(raw),
	})
	require.NoError(t, err)
}

func writeFailure(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func TestCartGateway(t *testing.T) {
	customerID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	originID := kernel.NewUUID()

	cartPayload := []map[string]any{{
		"id": itemID.String(),
		"origin": map[string]string{
			"id": originID.String(), "name": "Warung Sederhana", "hours": "08:00-22:00",
		},
		"name":      "Nasi Goreng",
		"unitPrice": 35000,
		"quantity":  2,
		"imageRef":  "nasi-goreng.jpg",
	}}

	t.Run("should read and map the cart with the auth header attached", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/customers/"+customerID.String()+"/cart", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			writeEnvelope(t, w, cartPayload)
		})

		items, err := httpapi.NewCartGateway(client).ReadCart(t.Context(), customerID)
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.True(t, items[0].ID().IsEqual(itemID))
		assert.Equal(t, "Warung Sederhana", items[0].Origin().Name())
		assert.Equal(t, kernel.Money(70000), items[0].Total())
	})

	t.Run("quantity update sends the absolute quantity", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			var body map[string]int
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 3, body["quantity"])
			writeEnvelope(t, w, cartPayload)
		})

		_, err := httpapi.NewCartGateway(client).UpdateQuantity(t.Context(), customerID, itemID, 3)
		require.NoError(t, err)
	})

	t.Run("envelope failure surfaces the server message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeFailure(w, http.StatusConflict, "ITEM_UNAVAILABLE", "item is sold out")
		})

		_, err := httpapi.NewCartGateway(client).ReadCart(t.Context(), customerID)
		require.ErrorIs(t, err, errs.ErrRemoteFailure)
		assert.Equal(t, "item is sold out", errs.UserMessage(err))
	})
}

func TestOrderGateway(t *testing.T) {
	draftItem, err := order.NewItemSnapshot(kernel.NewUUID(), "Nasi Goreng", 35000, 2)
	require.NoError(t, err)
	charges, err := order.NewCharges(70000, 10000, 2000)
	require.NoError(t, err)
	address, err := order.NewAddress("Jl. Sudirman 12", "3", "3B")
	require.NoError(t, err)
	draft, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.ItemSnapshot{draftItem}, charges, address, time.Now().UTC(),
	)
	require.NoError(t, err)

	authoritative := func(t *testing.T, w http.ResponseWriter, r *http.Request) {
		t.Helper()
		var dto map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&dto))
		// echo the draft back, the way the real API confirms a creation
		writeEnvelope(t, w, dto)
	}

	t.Run("should create an order and restore the response aggregate", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/orders", r.URL.Path)
			authoritative(t, w, r)
		})

		created, err := httpapi.NewOrderGateway(client).CreateOrder(t.Context(), draft)
		require.NoError(t, err)

		assert.True(t, created.IsEqual(draft))
		assert.Equal(t, order.Pending, created.Status())
		assert.Equal(t, kernel.Money(82000), created.Charges().Total())
		require.Len(t, created.History(), 1)
	})

	t.Run("corrupt charge figures are rejected on restore", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var dto map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&dto))
			dto["charges"].(map[string]any)["total"] = 99
			writeEnvelope(t, w, dto)
		})

		_, err := httpapi.NewOrderGateway(client).CreateOrder(t.Context(), draft)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("list forwards filters and maps the page", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, draft.CustomerID().String(), r.URL.Query().Get("customerId"))
			assert.Equal(t, "delivered", r.URL.Query().Get("status"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			writeEnvelope(t, w, map[string]any{
				"items": []any{}, "total": 14, "page": 2, "limit": 10, "totalPages": 2,
			})
		})

		page, err := httpapi.NewOrderGateway(client).ListOrders(
			t.Context(), draft.CustomerID(),
			ports.OrderFilter{Status: order.Delivered, Page: 2, Limit: 10})
		require.NoError(t, err)

		assert.Empty(t, page.Items)
		assert.Equal(t, 14, page.Total)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("missing order maps to not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeFailure(w, http.StatusNotFound, "NOT_FOUND", "order not found")
		})

		_, err := httpapi.NewOrderGateway(client).GetOrder(t.Context(), kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("advance posts actor and target status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/orders/"+draft.ID().String()+"/advance", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "restaurant", body["actor"])
			assert.Equal(t, "preparing", body["to"])
			writeEnvelope(t, w, anyOrderPayload(t, draft))
		})

		_, err := httpapi.NewOrderGateway(client).AdvanceOrder(
			t.Context(), draft.ID(), order.ActorRestaurant, order.Preparing)
		require.NoError(t, err)
	})
}

// anyOrderPayload round-trips a domain order through its wire shape.
func anyOrderPayload(t *testing.T, o *order.Order) json.RawMessage {
	t.Helper()
	history := make([]map[string]any, 0, len(o.History()))
	for _, change := range o.History() {
		history = append(history, map[string]any{
			"status": change.Status().String(), "at": change.At(),
		})
	}
	items := make([]map[string]any, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, map[string]any{
			"id": item.ID().String(), "name": item.Name(),
			"unitPrice": int64(item.UnitPrice()), "quantity": item.Quantity(),
		})
	}

	raw, err := json.Marshal(map[string]any{
		"id":         o.ID().String(),
		"originId":   o.OriginID().String(),
		"customerId": o.CustomerID().String(),
		"items":      items,
		"status":     o.Status().String(),
		"charges": map[string]int64{
			"subtotal":    int64(o.Charges().Subtotal()),
			"deliveryFee": int64(o.Charges().DeliveryFee()),
			"serviceFee":  int64(o.Charges().ServiceFee()),
			"total":       int64(o.Charges().Total()),
		},
		"address": map[string]string{
			"street": o.Address().Street(),
			"floor":  o.Address().Floor(),
			"door":   o.Address().Door(),
		},
		"createdAt": o.CreatedAt(),
		"history":   history,
	})
	require.NoError(t, err)
	return raw
}

func TestPayoutGateway(t *testing.T) {
	account, err := payout.NewBankAccount("bca", "1234567890", "Budi Santoso")
	require.NoError(t, err)
	request, err := payout.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(), payout.KindWithdrawal,
		50000, account, nil, time.Now().UTC(),
	)
	require.NoError(t, err)

	t.Run("should create a request and restore the response", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/payout-requests", r.URL.Path)
			var dto map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&dto))
			assert.Equal(t, "withdrawal", dto["kind"])
			writeEnvelope(t, w, dto)
		})

		created, err := httpapi.NewPayoutGateway(client).CreateRequest(t.Context(), request)
		require.NoError(t, err)

		assert.True(t, created.ID().IsEqual(request.ID()))
		assert.Equal(t, payout.StatusPending, created.Status())
		assert.Equal(t, kernel.Money(50000), created.Amount())
	})

	t.Run("list forwards kind and status filters", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "refund", r.URL.Query().Get("kind"))
			assert.Equal(t, "pending", r.URL.Query().Get("status"))
			writeEnvelope(t, w, map[string]any{
				"items": []any{}, "total": 0, "page": 1, "limit": 20, "totalPages": 0,
			})
		})

		page, err := httpapi.NewPayoutGateway(client).ListRequests(t.Context(),
			ports.PayoutFilter{Kind: payout.KindRefund, Status: payout.StatusPending})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}

func TestMenuGateway(t *testing.T) {
	t.Run("should return the authoritative availability flag", func(t *testing.T) {
		itemID := kernel.NewUUID()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/v1/menu-items/"+itemID.String()+"/availability", r.URL.Path)
			// server refuses to mark it available again
			writeEnvelope(t, w, map[string]bool{"available": false})
		})

		available, err := httpapi.NewMenuGateway(client).SetAvailability(t.Context(), itemID, true)
		require.NoError(t, err)
		assert.False(t, available)
	})
}
