package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogpkg "github.com/bwaremarkt/storefront/internal/catalog"
	"github.com/bwaremarkt/storefront/internal/dal/bolt"
	addressrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/address"
	cartrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/cart"
	orderrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/order"
	userrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/user"
	"github.com/bwaremarkt/storefront/internal/dal/storage"
	"github.com/bwaremarkt/storefront/internal/service/models/order"
	"github.com/bwaremarkt/storefront/internal/service/services/addresssvc"
	"github.com/bwaremarkt/storefront/internal/service/services/cartsvc"
	"github.com/bwaremarkt/storefront/internal/service/services/ordersvc"
	"github.com/bwaremarkt/storefront/internal/service/services/usersvc"
	"github.com/bwaremarkt/storefront/pkg/events"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	client, err := bolt.NewClient(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	store := storage.NewStore(client, events.NewBus())
	productCatalog := catalogpkg.MustLoad()

	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithCartRepository(cartrepo.NewCartRepository(store)),
	)
	addressSvc := addresssvc.MustNewAddressService(
		addresssvc.WithAddressRepository(addressrepo.NewAddressRepository(store)),
	)
	userSvc := usersvc.MustNewUserService(
		usersvc.WithUserRepository(userrepo.NewUserRepository(store)),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderrepo.NewOrderRepository(store)),
		ordersvc.WithAddressBook(addressSvc),
		ordersvc.WithCart(cartSvc),
		ordersvc.WithCatalog(productCatalog),
		ordersvc.WithSession(userSvc),
	)

	transport := NewHTTPTransport(orderSvc, cartSvc, addressSvc, userSvc, productCatalog)
	transport.RegisterRoutes()

	srv := httptest.NewServer(transport.Handler())
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestProducts(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []map[string]any
	decode(t, resp, &products)
	assert.NotEmpty(t, products)

	resp = do(t, http.MethodGet, srv.URL+"/api/products/wm-010", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/cart/items", map[string]any{"productId": "wm-010", "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count map[string]int
	decode(t, resp, &count)
	assert.Equal(t, 2, count["count"])

	resp = do(t, http.MethodGet, srv.URL+"/api/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cartBody struct {
		Items []struct {
			ProductID string          `json:"productId"`
			Quantity  int             `json:"quantity"`
			Product   json.RawMessage `json:"product"`
		} `json:"items"`
		Count int `json:"count"`
	}
	decode(t, resp, &cartBody)
	require.Len(t, cartBody.Items, 1)
	assert.Equal(t, "wm-010", cartBody.Items[0].ProductID)
	assert.NotNil(t, cartBody.Items[0].Product, "catalog data joined onto the line")

	resp = do(t, http.MethodPatch, srv.URL+"/api/cart/items/wm-010", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &count)
	assert.Equal(t, 5, count["count"])

	resp = do(t, http.MethodDelete, srv.URL+"/api/cart/items/wm-010", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &count)
	assert.Zero(t, count["count"])

	resp = do(t, http.MethodDelete, srv.URL+"/api/cart", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCheckoutAndOrderLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/cart/items", map[string]any{"productId": "wm-010", "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	form := map[string]string{
		"firstName":     "Max",
		"lastName":      "Mustermann",
		"street":        "Hauptstraße 1",
		"postalCode":    "10115",
		"city":          "Berlin",
		"phone":         "+49 30 1234567",
		"deliveryTime":  "vormittags",
		"paymentMethod": "card",
	}
	resp = do(t, http.MethodPost, srv.URL+"/api/orders", form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created order.Order
	decode(t, resp, &created)
	assert.Regexp(t, order.NumberPattern, created.OrderNumber)
	assert.Equal(t, order.StatusPaid, created.Status)
	assert.InDelta(t, 260.00, created.Subtotal, 0.001)

	// The cart is empty afterwards.
	resp = do(t, http.MethodGet, srv.URL+"/api/cart", nil)
	var cartBody struct {
		Count int `json:"count"`
	}
	decode(t, resp, &cartBody)
	assert.Zero(t, cartBody.Count)

	resp = do(t, http.MethodGet, srv.URL+"/api/orders", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []order.Order
	decode(t, resp, &orders)
	require.Len(t, orders, 1)

	resp = do(t, http.MethodGet, srv.URL+"/api/orders/number/"+created.OrderNumber, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/orders/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/orders/"+created.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cancelled order.Order
	decode(t, resp, &cancelled)
	assert.Equal(t, order.StatusCancelled, cancelled.Status)

	resp = do(t, http.MethodPost, srv.URL+"/api/orders/"+created.ID+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/api/orders/no-such-id/cancel", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckout_EmptyCart(t *testing.T) {
	srv := newTestServer(t)

	form := map[string]string{
		"firstName":     "Max",
		"lastName":      "Mustermann",
		"street":        "Hauptstraße 1",
		"postalCode":    "10115",
		"city":          "Berlin",
		"phone":         "+49 30 1234567",
		"deliveryTime":  "vormittags",
		"paymentMethod": "card",
	}
	resp := do(t, http.MethodPost, srv.URL+"/api/orders", form)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/orders/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/orders/number/BW-20200101-XXXXX", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddresses(t *testing.T) {
	srv := newTestServer(t)

	draft := map[string]any{
		"name":       "Max Mustermann",
		"street":     "Hauptstraße 1",
		"city":       "Berlin",
		"postalCode": "10115",
		"isDefault":  true,
	}
	resp := do(t, http.MethodPost, srv.URL+"/api/addresses", draft)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)

	resp = do(t, http.MethodGet, srv.URL+"/api/addresses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	decode(t, resp, &list)
	assert.Len(t, list, 1)

	resp = do(t, http.MethodPost, srv.URL+"/api/addresses", map[string]any{"name": "Max"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "incomplete draft is rejected")

	resp = do(t, http.MethodPost, srv.URL+"/api/addresses/"+created.ID+"/default", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/addresses/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/addresses/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserSession(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/api/user", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/api/user", map[string]any{
		"firstName":  "Max",
		"lastName":   "Mustermann",
		"email":      "max@example.com",
		"isLoggedIn": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/user", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var u map[string]any
	decode(t, resp, &u)
	assert.Equal(t, "max@example.com", u["email"])

	resp = do(t, http.MethodDelete, srv.URL+"/api/user", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/user", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
