package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quantityResponse struct {
	Message     string          `json:"message"`
	UpdatedItem models.CartItem `json:"updatedItem"`
	Total       float64         `json:"total"`
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/carts", map[string]any{"email": "a@x.com", "name": "Salad", "price": "10", "quantity": 1}, "")
	require.Equal(t, http.StatusOK, w.Code)
	saladID := insertedID(t, w)

	w = s.do(http.MethodPost, "/carts", map[string]any{"email": "b@x.com", "name": "Soup", "price": 4.5, "quantity": 2}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/carts?email=a@x.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]models.CartItem](t, w)
	require.Len(t, mine, 1)
	assert.EqualValues(t, 10, mine[0].Price)

	w = s.do(http.MethodPatch, "/carts/"+saladID, map[string]any{"quantity": 3}, "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[quantityResponse](t, w)
	assert.Equal(t, "Quantity updated", res.Message)
	assert.Equal(t, 3, res.UpdatedItem.Quantity)
	// whole store: 10*3 + 4.5*2
	assert.Equal(t, 39.0, res.Total)

	w = s.do(http.MethodGet, "/carts?email=a@x.com", nil, "")
	assert.Equal(t, 3, decode[[]models.CartItem](t, w)[0].Quantity)

	w = s.do(http.MethodDelete, "/carts/"+saladID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["deletedCount"])

	w = s.do(http.MethodGet, "/carts?email=a@x.com", nil, "")
	assert.Empty(t, decode[[]models.CartItem](t, w))
}

func TestCartTotalPerOwner(t *testing.T) {
	s := newTestServer(t, func(o *handlers.Options) { o.CartTotalPerOwner = true })

	id := insertedID(t, s.do(http.MethodPost, "/carts", map[string]any{"email": "a@x.com", "price": 10, "quantity": 1}, ""))
	s.do(http.MethodPost, "/carts", map[string]any{"email": "b@x.com", "price": 100, "quantity": 1}, "")

	w := s.do(http.MethodPatch, "/carts/"+id, map[string]any{"quantity": 3}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30.0, decode[quantityResponse](t, w).Total)
}

func TestCartEdgeCases(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/carts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodPatch, "/carts/64b7f0c2a1b2c3d4e5f60718", map[string]any{"quantity": 2}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not found", decode[map[string]any](t, w)["message"])

	id := insertedID(t, s.do(http.MethodPost, "/carts", map[string]any{"email": "a@x.com", "price": 1, "quantity": 1}, ""))
	w = s.do(http.MethodPatch, "/carts/"+id, map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPatch, "/carts/"+id, map[string]any{"quantity": -1}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/carts/xyz", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, price := range []any{"free", "NaN", "Infinity", "-Inf"} {
		w = s.do(http.MethodPost, "/carts", map[string]any{"email": "a@x.com", "price": price, "quantity": 1}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "price %v", price)
	}
}

func TestCartNonFinitePriceNeverStored(t *testing.T) {
	s := newTestServer(t)

	id := insertedID(t, s.do(http.MethodPost, "/carts", map[string]any{"email": "b@x.com", "price": 2, "quantity": 1}, ""))
	w := s.do(http.MethodPost, "/carts", map[string]any{"email": "a@x.com", "price": "NaN", "quantity": 1}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/carts?email=a@x.com", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodPatch, "/carts/"+id, map[string]any{"quantity": 2}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.0, decode[quantityResponse](t, w).Total)
}

// vanishingCarts deletes the item right before updating it, like a
// concurrent DELETE /carts/:id landing between the read and the write.
type vanishingCarts struct {
	store.Collection[models.CartItem]
}

func (v vanishingCarts) UpdateOne(ctx context.Context, filter store.Filter, patch store.Patch, upsert bool) (store.UpdateResult, error) {
	if _, err := v.Collection.DeleteOne(ctx, filter); err != nil {
		return store.UpdateResult{}, err
	}
	return v.Collection.UpdateOne(ctx, filter, patch, upsert)
}

func TestUpdateCartQuantityItemDeletedMeanwhile(t *testing.T) {
	s := newTestServer(t)
	id := insertedID(t, s.do(http.MethodPost, "/carts", map[string]any{"email": "a@x.com", "price": 5, "quantity": 1}, ""))

	s.stores.Carts = vanishingCarts{Collection: s.stores.Carts}
	s.rebuild()

	w := s.do(http.MethodPatch, "/carts/"+id, map[string]any{"quantity": 4}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Item not found", decode[map[string]any](t, w)["message"])
}
