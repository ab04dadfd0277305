package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/sqlite"
)

type catalog struct {
	products *usecase.ProductUseCase
	ledger   *inventory.LedgerUseCase
}

func newCatalog(t *testing.T) catalog {
	t.Helper()
	db, err := sqlite.Open(sqlite.Options{Path: ":memory:", AutoMigrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	productRepo := sqlite.NewProductRepository(db)
	tx := sqlite.NewTxRunner(db)
	return catalog{
		products: usecase.NewProductUseCase(productRepo, tx, nil),
		ledger:   inventory.NewLedgerUseCase(tx, productRepo, sqlite.NewMovementRepository(db), nil),
	}
}

func request(code, name, category, price string, qty int) dto.ProductRequest {
	return dto.ProductRequest{
		Code: code, Name: name, Category: category,
		Price:         decimal.RequireFromString(price),
		StockQuantity: qty,
	}
}

func intPtr(n int) *int { return &n }

func TestProductUseCase_CreateCodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	first, err := c.products.Create(ctx, request("SKU1", "Widget", "Tools", "9.99", 10))
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultReorderThreshold, first.ReorderThreshold)
	assert.False(t, first.LowStock)

	_, err = c.products.Create(ctx, request(" SKU1 ", "Otro", "Tools", "1", 1))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = c.products.Create(ctx, request("SKU2", "Otro", "Tools", "1", 1))
	assert.NoError(t, err)
}

func TestProductUseCase_CreateValidacion(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	bad := []dto.ProductRequest{
		request("", "Widget", "Tools", "1", 1),
		request("SKU1", "  ", "Tools", "1", 1),
		request("SKU1", "Widget", "", "1", 1),
		request("SKU1", "Widget", "Tools", "-0.01", 1),
		request("SKU1", "Widget", "Tools", "1", -1),
	}
	neg := request("SKU1", "Widget", "Tools", "1", 1)
	neg.ReorderThreshold = intPtr(-1)
	bad = append(bad, neg)

	for _, in := range bad {
		_, err := c.products.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestProductUseCase_UpdateConservaCodigoPropio(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	in := request("SKU1", "Widget", "Tools", "9.99", 10)
	in.ReorderThreshold = intPtr(8)
	p, err := c.products.Create(ctx, in)
	require.NoError(t, err)
	_, err = c.products.Create(ctx, request("SKU2", "Gadget", "Tools", "5", 1))
	require.NoError(t, err)

	// mismo código, umbral omitido: se conserva 8
	updated, err := c.products.Update(ctx, p.ID, request("SKU1", "Widget XL", "Tools", "12.50", 4))
	require.NoError(t, err)
	assert.Equal(t, "Widget XL", updated.Name)
	assert.Equal(t, 4, updated.StockQuantity)
	assert.Equal(t, 8, updated.ReorderThreshold)
	assert.True(t, updated.LowStock)

	_, err = c.products.Update(ctx, p.ID, request("SKU2", "Widget XL", "Tools", "12.50", 4))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = c.products.Update(ctx, p.ID+100, request("SKU9", "X", "Y", "1", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := c.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU1", got.Code, "el update rechazado no cambia nada")
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.Price))
}

func TestProductUseCase_DeleteEliminaMovimientos(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	p, err := c.products.Create(ctx, request("SKU1", "Widget", "Tools", "9.99", 0))
	require.NoError(t, err)
	_, err = c.ledger.ApplyMovement(ctx, inventory.MovementInput{ProductID: p.ID, Kind: entity.MovementIN, Quantity: 3})
	require.NoError(t, err)
	_, err = c.ledger.ApplyMovement(ctx, inventory.MovementInput{ProductID: p.ID, Kind: entity.MovementOUT, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, c.products.Delete(ctx, p.ID))

	_, err = c.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.ledger.ListByProduct(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, c.products.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProductUseCase_AttributesYCategorias(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	cats, err := c.products.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)

	p, err := c.products.Create(ctx, request("SKU1", "Widget", "Tools", "9.99", 10))
	require.NoError(t, err)
	_, err = c.products.Create(ctx, request("SKU2", "Arroz", "Alimentos", "4.20", 2))
	require.NoError(t, err)
	_, err = c.products.Create(ctx, request("SKU3", "Martelo", "Tools", "30", 1))
	require.NoError(t, err)

	attrs, err := c.products.GetAttributes(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU1", attrs["code"])
	assert.Equal(t, 9.99, attrs["price"])
	assert.Equal(t, 10, attrs["stock_quantity"])
	assert.Equal(t, entity.DefaultReorderThreshold, attrs["reorder_threshold"])

	_, err = c.products.GetAttributes(ctx, p.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cats, err = c.products.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alimentos", "Tools"}, cats)

	list, err := c.products.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, []string{"Arroz", "Martelo", "Widget"}, []string{list.Items[0].Name, list.Items[1].Name, list.Items[2].Name})
}
