package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderThreshold estoque mínimo cuando no se informa al registrar.
const DefaultReorderThreshold = 5

// Product representa un producto del catálogo.
// StockQuantity se mantiene directamente por el libro de movimientos y nunca es negativo.
type Product struct {
	ID               int64
	Code             string // código único elegido por el usuario (comparación exacta)
	Name             string
	Category         string
	Price            decimal.Decimal
	StockQuantity    int
	ReorderThreshold int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsLowStock indica si el producto está en o por debajo del estoque mínimo.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderThreshold
}

// StockValue devuelve StockQuantity * Price.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.StockQuantity)))
}
