package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
)

func product(code, cat string, qty, min int, price string) *entity.Product {
	return &entity.Product{Code: code, Name: code, Category: cat, StockQuantity: qty, ReorderThreshold: min, Price: decimal.RequireFromString(price)}
}

func TestNextQuantity(t *testing.T) {
	n, err := inventory.NextQuantity(1, 5, entity.MovementIN, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = inventory.NextQuantity(1, 5, entity.MovementOUT, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = inventory.NextQuantity(1, 5, entity.MovementOUT, 6)
	require.Error(t, err)
	assert.Equal(t, 5, n, "una salida rechazada no descuenta nada")
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 5, ise.Available)
	assert.Equal(t, 6, ise.Requested)

	_, err = inventory.NextQuantity(1, 5, entity.MovementIN, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = inventory.NextQuantity(1, 5, entity.MovementKind("entrada"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeTotals_CatalogoVacio(t *testing.T) {
	tot := inventory.ComputeTotals(nil)
	assert.Equal(t, 0, tot.ProductCount)
	assert.Equal(t, int64(0), tot.StockUnits)
	assert.True(t, tot.StockValue.IsZero())
}

func TestComputeTotals(t *testing.T) {
	tot := inventory.ComputeTotals([]*entity.Product{
		product("SKU1", "Tools", 10, 5, "9.99"),
		product("SKU2", "Tools", 3, 5, "0.10"),
	})
	assert.Equal(t, 2, tot.ProductCount)
	assert.Equal(t, int64(13), tot.StockUnits)
	assert.Equal(t, "100.2", tot.StockValue.String())
}

func TestLowStock_IncluyeIgualAlMinimo(t *testing.T) {
	list := inventory.LowStock([]*entity.Product{
		product("A", "x", 5, 5, "1"),
		product("B", "x", 6, 5, "1"),
		product("C", "x", 0, 0, "1"),
	})
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Code)
	assert.Equal(t, "C", list[1].Code)

	assert.NotNil(t, inventory.LowStock(nil), "lista vacía, no nil, para serializar []")
}

func TestStockByCategory_OrdenYEmpates(t *testing.T) {
	got := inventory.StockByCategory([]*entity.Product{
		product("A", "Tools", 4, 5, "1"),
		product("B", "Bebidas", 10, 5, "1"),
		product("C", "Tools", 6, 5, "1"),
		product("D", "Aseo", 10, 5, "1"),
		product("E", "Zapatos", 1, 5, "1"),
	})
	assert.Equal(t, []inventory.CategoryStock{
		{Category: "Aseo", Quantity: 10},
		{Category: "Bebidas", Quantity: 10},
		{Category: "Tools", Quantity: 10},
		{Category: "Zapatos", Quantity: 1},
	}, got)
}
