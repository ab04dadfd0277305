package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para registrar o editar un producto.
// ReorderThreshold nil: 5 al registrar; al editar conserva el valor actual.
type ProductRequest struct {
	Code             string          `json:"code" validate:"required,max=50"`
	Name             string          `json:"name" validate:"required,max=100"`
	Category         string          `json:"category" validate:"required,max=50"`
	Price            decimal.Decimal `json:"price" validate:"gte=0"`
	StockQuantity    int             `json:"stock_quantity" validate:"gte=0"`
	ReorderThreshold *int            `json:"reorder_threshold" validate:"omitempty,gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               int64           `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Price            decimal.Decimal `json:"price"`
	StockQuantity    int             `json:"stock_quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	LowStock         bool            `json:"low_stock"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductListResponse lista completa del catálogo (ordenada por nombre).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductDetailResponse producto con su historial de movimientos (más recientes primero).
type ProductDetailResponse struct {
	Product   ProductResponse    `json:"product"`
	Movements []MovementResponse `json:"movements"`
}
