package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// CategoryStock total de unidades en estoque de una categoría.
type CategoryStock struct {
	Category string
	Quantity int64
}

// Totals totales del tablero sobre el catálogo completo.
type Totals struct {
	ProductCount int
	StockUnits   int64
	StockValue   decimal.Decimal
}

// ComputeTotals suma unidades y valor (Quantity * Price) de todos los productos. Catálogo vacío = ceros.
func ComputeTotals(products []*entity.Product) Totals {
	t := Totals{ProductCount: len(products), StockValue: decimal.Zero}
	for _, p := range products {
		t.StockUnits += int64(p.StockQuantity)
		t.StockValue = t.StockValue.Add(p.StockValue())
	}
	return t
}

// LowStock filtra los productos con StockQuantity <= ReorderThreshold, conservando el orden recibido.
func LowStock(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

// StockByCategory agrupa unidades por categoría: mayor total primero, empate por nombre ascendente.
func StockByCategory(products []*entity.Product) []CategoryStock {
	totals := make(map[string]int64)
	for _, p := range products {
		totals[p.Category] += int64(p.StockQuantity)
	}
	out := make([]CategoryStock, 0, len(totals))
	for cat, qty := range totals {
		out = append(out, CategoryStock{Category: cat, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Category < out[j].Category
	})
	return out
}
