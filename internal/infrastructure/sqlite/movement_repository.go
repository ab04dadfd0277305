package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre SQLite.
type MovementRepo struct {
	db *gorm.DB
}

// NewMovementRepository construye el adaptador. Pasar la base o una tx de GORM.
func NewMovementRepository(db *gorm.DB) *MovementRepo {
	return &MovementRepo{db: db}
}

// Create inserta la entrada y completa su ID.
func (r *MovementRepo) Create(ctx context.Context, mov *entity.Movement) error {
	m := movementModel{
		ProductID: mov.ProductID,
		Kind:      string(mov.Kind),
		Quantity:  mov.Quantity,
		CreatedAt: mov.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	mov.ID = m.ID
	return nil
}

// ListByProduct movimientos del producto, más recientes primero.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	return r.find(r.db.WithContext(ctx).Where("product_id = ?", productID))
}

// List aplica el filtro. Los límites van en UTC, igual que created_at almacenado.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	q := r.db.WithContext(ctx)
	if filter.From != nil {
		q = q.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", filter.To.UTC())
	}
	if filter.Kind != nil {
		q = q.Where("kind = ?", string(*filter.Kind))
	}
	return r.find(q)
}

// DeleteByProduct elimina los movimientos del producto y devuelve cuántos borró.
func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&movementModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete movements: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MovementRepo) find(q *gorm.DB) ([]*entity.Movement, error) {
	var models []movementModel
	if err := q.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.Movement, 0, len(models))
	for _, m := range models {
		list = append(list, m.toEntity())
	}
	return list, nil
}
