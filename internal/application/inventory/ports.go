package inventory

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: ni el movimiento ni el cambio de estoque quedan aplicados.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// EventPublisher notifica cambios ya confirmados. Las fallas de publicación no afectan la operación.
type EventPublisher interface {
	MovementApplied(ctx context.Context, product *entity.Product, movement *entity.Movement)
	ProductDeleted(ctx context.Context, product *entity.Product, removedMovements int64)
}

// NopPublisher descarta los eventos (sin brokers configurados).
type NopPublisher struct{}

func (NopPublisher) MovementApplied(context.Context, *entity.Product, *entity.Movement) {}
func (NopPublisher) ProductDeleted(context.Context, *entity.Product, int64)             {}
