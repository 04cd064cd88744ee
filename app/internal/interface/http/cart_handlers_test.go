package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/branch-cart/app/internal/infra/security"
)

func TestCart_RequiresSession(t *testing.T) {
	router, _ := setupAPI(t, true)
	foreign, err := security.NewSessionTokenService("other", time.Hour).GenerateToken("x")
	require.NoError(t, err)
	unknown, err := security.NewSessionTokenService("test-secret", time.Hour).GenerateToken("no-such-session")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "No token", token: ""},
		{name: "Garbage token", token: "garbage"},
		{name: "Foreign token", token: foreign},
		{name: "Unknown session", token: unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodGet, "/api/v1/me/cart", tt.token, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
		})
	}
}

func TestCart_EmptyCart(t *testing.T) {
	router, _ := setupAPI(t, true)
	token := newSession(t, router)

	rec := doRequest(router, http.MethodGet, "/api/v1/me/cart", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	require.Len(t, resp["items"].([]any), 0)
	require.Equal(t, 0.0, resp["total"])
	require.Equal(t, "$0.00", resp["total_formatted"])
}

func TestCart_AddSameProductTwice(t *testing.T) {
	router, _ := setupAPI(t, true)
	token := newSession(t, router)

	for i := 0; i < 2; i++ {
		rec := doRequest(router, http.MethodPost, "/api/v1/me/cart/items", token, map[string]any{"product_id": 1})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doRequest(router, http.MethodGet, "/api/v1/me/cart", token, nil)
	resp := decodeBody(t, rec)
	items := resp["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	require.Equal(t, float64(1), item["product_id"])
	require.Equal(t, float64(2), item["quantity"])
	require.Equal(t, 5.0, item["subtotal"])
	require.Equal(t, float64(2), resp["item_count"])
}

func TestCart_TotalAndOrder(t *testing.T) {
	router, _ := setupAPI(t, true)
	token := newSession(t, router)

	for _, id := range []int{2, 1, 2, 1, 2} {
		rec := doRequest(router, http.MethodPost, "/api/v1/me/cart/items", token, map[string]any{"product_id": id})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	resp := decodeBody(t, doRequest(router, http.MethodGet, "/api/v1/me/cart", token, nil))
	items := resp["items"].([]any)
	require.Equal(t, float64(2), items[0].(map[string]any)["product_id"])
	require.Equal(t, float64(1), items[1].(map[string]any)["product_id"])
	require.Equal(t, 8.0, resp["total"])
	require.Equal(t, "$8.00", resp["total_formatted"])
}

func TestCart_AddInvalid(t *testing.T) {
	router, _ := setupAPI(t, true)
	token := newSession(t, router)

	rec := doRequest(router, http.MethodPost, "/api/v1/me/cart/items", token, map[string]any{"product_id": 99})
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())

	rec = doRequest(router, http.MethodPost, "/api/v1/me/cart/items", token, map[string]any{"product_id": 0})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = doRequest(router, http.MethodPost, "/api/v1/me/cart/items", token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestCart_RemoveAndClear(t *testing.T) {
	router, _ := setupAPI(t, true)
	token := newSession(t, router)
	doRequest(router, http.MethodPost, "/api/v1/me/cart/items", token, map[string]any{"product_id": 1})
	doRequest(router, http.MethodPost, "/api/v1/me/cart/items", token, map[string]any{"product_id": 2})

	rec := doRequest(router, http.MethodDelete, "/api/v1/me/cart/items/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	require.Equal(t, float64(2), items[0].(map[string]any)["product_id"])

	before := decodeBody(t, doRequest(router, http.MethodGet, "/api/v1/me/cart", token, nil))
	rec = doRequest(router, http.MethodDelete, "/api/v1/me/cart/items/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, before, decodeBody(t, rec), "removing an absent product is a no-op")

	for i := 0; i < 2; i++ {
		rec = doRequest(router, http.MethodDelete, "/api/v1/me/cart", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decodeBody(t, rec)["items"].([]any), 0)
	}
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	router, _ := setupAPI(t, true)
	a := newSession(t, router)
	b := newSession(t, router)

	doRequest(router, http.MethodPost, "/api/v1/me/cart/items", a, map[string]any{"product_id": 1})

	resp := decodeBody(t, doRequest(router, http.MethodGet, "/api/v1/me/cart", b, nil))
	require.Len(t, resp["items"].([]any), 0)
}

func TestEndSession(t *testing.T) {
	router, _ := setupAPI(t, true)
	token := newSession(t, router)

	rec := doRequest(router, http.MethodDelete, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/me/cart", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
