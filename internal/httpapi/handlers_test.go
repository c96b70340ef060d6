package httpapi_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nikolayk812/storefront-state/internal/catalog"
	"github.com/nikolayk812/storefront-state/internal/config"
	"github.com/nikolayk812/storefront-state/internal/domain"
	"github.com/nikolayk812/storefront-state/internal/httpapi"
	"github.com/nikolayk812/storefront-state/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cart    *store.CartStore
	session *store.SessionStore
	router  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics := store.NewMetrics(reg, "storefront")

	env := &testEnv{
		cart:    store.NewCartStore(store.WithMetrics(metrics)),
		session: store.NewSessionStore(store.WithMetrics(metrics)),
	}
	t.Cleanup(func() {
		env.cart.Close()
		env.session.Close()
	})

	env.router = httpapi.NewRouter(httpapi.Deps{
		Cart:     env.cart,
		Session:  env.session,
		Catalog:  catalog.Default(),
		Display:  config.Display{AccentColor: "orange", CardCornerRadius: 16, DebugMode: true},
		Gatherer: reg,
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type cartResponse struct {
	Items []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Price    string `json:"price"`
		Quantity int    `json:"quantity"`
		Subtotal string `json:"subtotal"`
	} `json:"items"`
	TotalPrice string `json:"totalPrice"`
	ItemCount  int    `json:"itemCount"`
	Currency   string `json:"currency"`
}

type sessionResponse struct {
	Username       string `json:"username"`
	IsLoggedIn     bool   `json:"isLoggedIn"`
	PreferDarkMode bool   `json:"preferDarkMode"`
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	products := decode[[]struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Price string `json:"price"`
	}](t, rec)

	require.Len(t, products, 4)
	assert.Equal(t, "1", products[0].ID)
	assert.Equal(t, "Coffee", products[0].Name)
	assert.Equal(t, "4.99", products[0].Price)
}

func TestGetDisplay(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/display", "")
	require.Equal(t, http.StatusOK, rec.Code)

	display := decode[config.Display](t, rec)
	assert.Equal(t, config.Display{AccentColor: "orange", CardCornerRadius: 16, DebugMode: true}, display)
}

func TestAddItem(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "add catalog product: ok",
			body:       `{"productId":"1"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown product: error",
			body:       `{"productId":"99"}`,
			wantStatus: http.StatusNotFound,
			wantError:  "product[99] not found",
		},
		{
			name:       "empty product id: error",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "productId is empty",
		},
		{
			name:       "malformed body: error",
			body:       `{"productId":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "unknown field: error",
			body:       `{"productId":"1","price":"0.01"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(t, http.MethodPost, "/api/cart/items", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				resp := decode[struct {
					Error string `json:"error"`
				}](t, rec)
				assert.Contains(t, resp.Error, tt.wantError)
				assert.Zero(t, env.cart.ItemCount())
				return
			}

			cart := decode[cartResponse](t, rec)
			require.Len(t, cart.Items, 1)
			assert.Equal(t, "Coffee", cart.Items[0].Name)
			assert.Equal(t, "4.99", cart.TotalPrice)
			assert.Equal(t, "USD", cart.Currency)
		})
	}
}

func TestCartScenario(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	rec := env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decode[cartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "9.98", cart.Items[0].Subtotal)
	assert.Equal(t, "9.98", cart.TotalPrice)
	assert.Equal(t, 2, cart.ItemCount)

	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"2"}`)

	rec = env.do(t, http.MethodDelete, "/api/cart/items/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// removing twice is still a no-op success
	rec = env.do(t, http.MethodDelete, "/api/cart/items/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cart = decode[cartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].ID)
	assert.Equal(t, "3.49", cart.TotalPrice)

	rec = env.do(t, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", "")
	cart = decode[cartResponse](t, rec)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.TotalPrice)
	assert.Zero(t, cart.ItemCount)
}

func TestSessionScenario(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionResponse{Username: domain.GuestUsername}, decode[sessionResponse](t, rec))

	rec = env.do(t, http.MethodPost, "/api/session/login", `{"username":"Alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionResponse{Username: "Alice", IsLoggedIn: true}, decode[sessionResponse](t, rec))

	rec = env.do(t, http.MethodPut, "/api/session/preferences", `{"preferDarkMode":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[sessionResponse](t, rec).PreferDarkMode)

	rec = env.do(t, http.MethodPost, "/api/session/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionResponse{Username: domain.GuestUsername, PreferDarkMode: true}, decode[sessionResponse](t, rec))

	rec = env.do(t, http.MethodPost, "/api/session/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.GuestUsername, env.session.Username())
	assert.False(t, env.session.IsLoggedIn())
}

func TestLoginEmptyUsername(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/session/login", `{"username":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, sessionResponse{Username: "", IsLoggedIn: true}, decode[sessionResponse](t, rec))
}

func TestSetPreferencesMissingField(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/session/preferences", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.session.PreferDarkMode())
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/cart/items", `{"productId":"3"}`)

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `storefront_cart_operations_total{op="add"} 1`)
	assert.Contains(t, body, "storefront_cart_items 1")
}

func mustPrice(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
