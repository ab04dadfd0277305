package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre SQLite (db o tx).
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepository construye el adaptador. Pasar la base o una tx de GORM.
func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un nuevo producto y completa su ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	m := productToModel(product)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = m.ID
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

// GetForUpdate igual que GetByID: con una única conexión la tx en curso ya es exclusiva.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByCode obtiene un producto por código exacto.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.first(ctx, "code = ?", code)
}

func (r *ProductRepo) first(ctx context.Context, cond string, arg any) (*entity.Product, error) {
	var m productModel
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return m.toEntity(), nil
}

// Update sobrescribe los campos editables. ErrNotFound si la fila no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", product.ID).Updates(map[string]any{
		"code":              product.Code,
		"name":              product.Name,
		"category":          product.Category,
		"price":             product.Price,
		"stock_quantity":    product.StockQuantity,
		"reorder_threshold": product.ReorderThreshold,
		"updated_at":        product.UpdatedAt,
	})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica delta solo si stock_quantity + delta >= 0 y devuelve el estoque resultante.
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&productModel{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity + ?", delta),
			"updated_at":     db.NowFunc(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("adjust stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrInsufficientStock
	}
	var qty int
	if err := db.Model(&productModel{}).Where("id = ?", id).Pluck("stock_quantity", &qty).Error; err != nil {
		return 0, fmt.Errorf("read stock: %w", err)
	}
	return qty, nil
}

// List devuelve todo el catálogo ordenado por nombre e id.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var models []productModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(models))
	for _, m := range models {
		list = append(list, m.toEntity())
	}
	return list, nil
}

// ListCategories devuelve las categorías distintas en orden ascendente.
func (r *ProductRepo) ListCategories(ctx context.Context) ([]string, error) {
	cats := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&productModel{}).
		Distinct("category").Order("category ASC").Pluck("category", &cats).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Delete elimina el producto (los movimientos restantes caen por ON DELETE CASCADE).
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&productModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
