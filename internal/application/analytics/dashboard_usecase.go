// Package analytics contiene los casos de uso de lectura del tablero:
// totales de estoque, distribución por categoría y alertas de estoque bajo.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// DashboardUseCase calcula el resumen del tablero en cada llamada (sin caché).
type DashboardUseCase struct {
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos lecturas en paralelo:
//  1. List()           → totales, estoque bajo y distribución por categoría
//  2. ListCategories() → categorías para filtros
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type categoriesResult struct {
		list []string
		err  error
	}

	productsCh := make(chan productsResult, 1)
	categoriesCh := make(chan categoriesResult, 1)

	go func() {
		list, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.productRepo.ListCategories(ctx)
		categoriesCh <- categoriesResult{list, err}
	}()

	products := <-productsCh
	categories := <-categoriesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: categorías: %w", categories.err)
	}

	totals := inventory.ComputeTotals(products.list)
	low := inventory.LowStock(products.list)

	byCategory := inventory.StockByCategory(products.list)
	chart := make([]dto.CategoryStock, 0, len(byCategory))
	for _, c := range byCategory {
		chart = append(chart, dto.CategoryStock{Category: c.Category, Quantity: c.Quantity})
	}

	cats := categories.list
	if cats == nil {
		cats = []string{}
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   totals.ProductCount,
		TotalStockUnits: totals.StockUnits,
		TotalStockValue: totals.StockValue.Round(2),
		LowStockCount:   len(low),
		LowStock:        dto.ProductsFromEntities(low),
		StockByCategory: chart,
		Categories:      cats,
	}, nil
}

// LowStockAlerts devuelve solo los productos en o por debajo del estoque mínimo.
func (uc *DashboardUseCase) LowStockAlerts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", err)
	}
	return dto.ProductsFromEntities(inventory.LowStock(list)), nil
}
