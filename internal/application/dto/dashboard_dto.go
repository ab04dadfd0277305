package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary. Se recalcula en cada llamada.
type DashboardSummaryDTO struct {
	TotalProducts   int               `json:"total_products"`
	TotalStockUnits int64             `json:"total_stock_units"`
	TotalStockValue decimal.Decimal   `json:"total_stock_value"`
	LowStockCount   int               `json:"low_stock_count"`
	LowStock        []ProductResponse `json:"low_stock"`
	StockByCategory []CategoryStock   `json:"stock_by_category"` // datos del gráfico, mayor a menor
	Categories      []string          `json:"categories"`
}

// CategoryStock unidades totales por categoría.
type CategoryStock struct {
	Category string `json:"category"`
	Quantity int64  `json:"quantity"`
}
