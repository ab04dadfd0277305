package repository

import (
	"context"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock suma delta a stock_quantity solo si el resultado no queda negativo.
	// Devuelve domain.ErrInsufficientStock si la condición falla al momento de escribir.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id int64) error
}
