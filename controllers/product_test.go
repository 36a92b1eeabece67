package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productBackend keeps one product whose quantity follows PATCH requests.
func productBackend(env *testEnv, quantity int) {
	var mu sync.Mutex
	render := func(w http.ResponseWriter) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "p1", "title": "Argan Oil", "price": "18.00", "quantity": quantity,
		})
	}
	env.backend.handle(http.MethodGet, "/api/products/salon/s1", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "p1", "title": "Argan Oil", "price": "18.00", "quantity": quantity},
		})
	})
	env.backend.handle(http.MethodPatch, "/api/products/p1", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		var body struct {
			Quantity *int `json:"quantity"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		if body.Quantity != nil {
			quantity = *body.Quantity
		}
		render(w)
	})
}

func productEnv(t *testing.T, quantity int) *testEnv {
	env := newTestEnv(t)
	pc := ProductController{Backend: env.backend.client()}
	env.api.GET("/products", pc.ListProducts)
	env.api.POST("/products/:id/visibility", pc.ToggleVisibility)
	productBackend(env, quantity)
	return env
}

func TestProductHideAndRestoreStock(t *testing.T) {
	env := productEnv(t, 12)

	w := env.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decodeBody(t, w)["products"].([]interface{})
	require.Len(t, products, 1)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Active", first["status"])
	assert.Equal(t, "$18.00", first["priceLabel"])

	w = env.do(t, http.MethodPost, "/api/products/p1/visibility", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Hidden", body["status"])
	assert.Equal(t, float64(0), body["quantity"])
	assert.Equal(t, float64(12), body["originalStock"])

	w = env.do(t, http.MethodGet, "/api/products?visibility=hidden", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["products"], 1)

	w = env.do(t, http.MethodPost, "/api/products/p1/visibility", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Active", decodeBody(t, w)["status"])

	patches := env.backend.callsTo(http.MethodPatch, "/api/products/p1")
	require.Len(t, patches, 2)
	assert.JSONEq(t, `{"quantity":0}`, patches[0].Body)
	assert.JSONEq(t, `{"quantity":12}`, patches[1].Body)
	assert.Empty(t, env.backend.callsTo(http.MethodGet, "/api/products/p1"))
}

func TestProductToggleUnknownProduct(t *testing.T) {
	env := productEnv(t, 4)

	w := env.do(t, http.MethodPost, "/api/products/missing/visibility", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeBody(t, w)["error"])
	assert.Empty(t, env.backend.callsTo(http.MethodPatch, "/api/products/missing"))
}

func TestProductShowWithoutRememberedStock(t *testing.T) {
	env := productEnv(t, 0)

	w := env.do(t, http.MethodPost, "/api/products/p1/visibility", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, env.backend.callsTo(http.MethodPatch, "/api/products/p1"))
}

func TestProductListRejectsUnknownVisibility(t *testing.T) {
	env := productEnv(t, 3)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/products?visibility=maybe", nil).Code)
}
