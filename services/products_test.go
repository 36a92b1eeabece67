package services

import (
	"testing"

	"salonpro-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductViewZeroQuantityIsHidden(t *testing.T) {
	view := NewProductView(models.Product{ID: "p1", Quantity: 0, Price: 12.5}, 8)

	assert.False(t, view.IsActive)
	assert.Equal(t, models.ProductStatusHidden, view.Status)
	assert.Equal(t, 8, view.OriginalStock)
	assert.Equal(t, "$12.50", view.PriceLabel)

	visible := NewProductView(models.Product{ID: "p1", Quantity: 5}, 8)
	assert.True(t, visible.IsActive)
	assert.Equal(t, models.ProductStatusActive, visible.Status)
	assert.Equal(t, 5, visible.OriginalStock)
}

func TestToggledQuantity(t *testing.T) {
	q, err := ToggledQuantity(NewProductView(models.Product{Quantity: 5}, 0))
	require.NoError(t, err)
	assert.Equal(t, 0, q)

	q, err = ToggledQuantity(NewProductView(models.Product{Quantity: 0}, 7))
	require.NoError(t, err)
	assert.Equal(t, 7, q)

	_, err = ToggledQuantity(NewProductView(models.Product{Quantity: 0}, 0))
	assert.ErrorIs(t, err, ErrNoPreviousStock)
}

func TestProductStockRemembersLastNonZeroQuantity(t *testing.T) {
	store := &ProductStockStore{DB: setupTestDB(t)}

	views, err := store.Views("s1", []models.Product{{ID: "p1", Quantity: 6}, {ID: "p2", Quantity: 0}})
	require.NoError(t, err)
	assert.Equal(t, 6, views[0].OriginalStock)
	assert.Equal(t, 0, views[1].OriginalStock)

	views, err = store.Views("s1", []models.Product{{ID: "p1", Quantity: 9}})
	require.NoError(t, err)
	assert.Equal(t, 9, views[0].OriginalStock)

	// Hidden now: the last non-zero quantity is restored.
	views, err = store.Views("s1", []models.Product{{ID: "p1", Quantity: 0}})
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusHidden, views[0].Status)
	q, err := ToggledQuantity(views[0])
	require.NoError(t, err)
	assert.Equal(t, 9, q)

	require.NoError(t, store.Forget("p1"))
	stock, err := store.Lookup([]string{"p1"})
	require.NoError(t, err)
	assert.Empty(t, stock)
}
