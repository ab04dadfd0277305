package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. El estoque se mueve vía movimientos,
// salvo la edición explícita del producto.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	events   inventory.EventPublisher
}

// NewProductUseCase construye el caso de uso. events puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner, events inventory.EventPublisher) *ProductUseCase {
	if events == nil {
		events = inventory.NopPublisher{}
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, events: events}
}

// Create registra un producto. ErrDuplicate si el código ya existe.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in = normalize(in)
	if err := validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	threshold := entity.DefaultReorderThreshold
	if in.ReorderThreshold != nil {
		threshold = *in.ReorderThreshold
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	product := &entity.Product{
		Code:             in.Code,
		Name:             in.Name,
		Category:         in.Category,
		Price:            in.Price,
		StockQuantity:    in.StockQuantity,
		ReorderThreshold: threshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// GetByID obtiene un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// GetAttributes devuelve el producto como mapa plano (formularios de edición).
func (uc *ProductUseCase) GetAttributes(ctx context.Context, id int64) (map[string]any, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	price, _ := product.Price.Float64()
	return map[string]any{
		"id":                product.ID,
		"code":              product.Code,
		"name":              product.Name,
		"category":          product.Category,
		"price":             price,
		"stock_quantity":    product.StockQuantity,
		"reorder_threshold": product.ReorderThreshold,
	}, nil
}

// Update sobrescribe todos los campos del producto bajo bloqueo de fila.
// ErrDuplicate solo si el código pertenece a otro producto.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in = normalize(in)
	if err := validate(in); err != nil {
		return nil, err
	}
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		other, err := productRepo.GetByCode(ctx, in.Code)
		if err != nil {
			return err
		}
		if other != nil && other.ID != id {
			return domain.ErrDuplicate
		}
		product.Code = in.Code
		product.Name = in.Name
		product.Category = in.Category
		product.Price = in.Price
		product.StockQuantity = in.StockQuantity
		if in.ReorderThreshold != nil {
			product.ReorderThreshold = *in.ReorderThreshold
		}
		product.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ProductFromEntity(updated)
	return &out, nil
}

// Delete elimina el producto y todos sus movimientos en la misma transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	var (
		deleted *entity.Product
		removed int64
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		n, err := movementRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		if err := productRepo.Delete(ctx, id); err != nil {
			return err
		}
		deleted, removed = product, n
		return nil
	})
	if err != nil {
		return err
	}
	uc.events.ProductDeleted(ctx, deleted, removed)
	return nil
}

// List devuelve todo el catálogo ordenado por nombre.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := dto.ProductsFromEntities(list)
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// ListCategories devuelve las categorías distintas en orden alfabético.
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := uc.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// normalize recorta espacios de los textos; el código se compara exacto después del recorte.
func normalize(in dto.ProductRequest) dto.ProductRequest {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func validate(in dto.ProductRequest) error {
	if in.Code == "" || in.Name == "" || in.Category == "" {
		return domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.StockQuantity < 0 {
		return domain.ErrInvalidInput
	}
	if in.ReorderThreshold != nil && *in.ReorderThreshold < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}
