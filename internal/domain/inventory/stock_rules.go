package inventory

import (
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// NextQuantity aplica un movimiento sobre el estoque actual (servicio de dominio).
// IN suma sin condición; OUT exige current >= quantity. Nunca devuelve un valor negativo.
func NextQuantity(productID int64, current int, kind entity.MovementKind, quantity int) (int, error) {
	if quantity <= 0 || !kind.Valid() {
		return current, domain.ErrInvalidInput
	}
	if kind == entity.MovementIN {
		return current + quantity, nil
	}
	if current < quantity {
		return current, &domain.InsufficientStockError{ProductID: productID, Available: current, Requested: quantity}
	}
	return current - quantity, nil
}
