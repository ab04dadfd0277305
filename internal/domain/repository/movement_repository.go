package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// MovementFilter criterios del reporte de movimientos. From inclusivo, To exclusivo; nil = sin límite.
type MovementFilter struct {
	From *time.Time
	To   *time.Time
	Kind *entity.MovementKind
}

// MovementRepository define el puerto de persistencia del libro de movimientos (solo inserción).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// ListByProduct devuelve los movimientos del producto, más recientes primero.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error)
	// List devuelve los movimientos que cumplen el filtro, más recientes primero.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
}
