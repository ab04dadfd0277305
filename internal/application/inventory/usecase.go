package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Estoque-api/internal/application/dto"
	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos de estoque de forma transaccional
// (IN, OUT) con bloqueo de fila y Commit/Rollback.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	events       EventPublisher
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso. events puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	events EventPublisher,
) *LedgerUseCase {
	if events == nil {
		events = NopPublisher{}
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		events:       events,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// MovementInput entrada para aplicar un movimiento.
type MovementInput struct {
	ProductID int64
	Kind      entity.MovementKind
	Quantity  int
}

// ApplyMovement bloquea la fila del producto, valida el estoque, lo actualiza y agrega la
// entrada al libro en una sola transacción. Una salida rechazada no deja ningún registro.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if in.Quantity <= 0 || !in.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}

	var (
		applied *entity.Movement
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if _, err := inventory.NextQuantity(p.ID, p.StockQuantity, in.Kind, in.Quantity); err != nil {
			return err
		}

		mov := &entity.Movement{
			ProductID: p.ID,
			Kind:      in.Kind,
			Quantity:  in.Quantity,
			CreatedAt: uc.now(),
		}
		// La condición stock + delta >= 0 se vuelve a evaluar al escribir.
		qty, err := productRepo.AdjustStock(ctx, p.ID, mov.Delta())
		if errors.Is(err, domain.ErrInsufficientStock) {
			current, getErr := productRepo.GetByID(ctx, p.ID)
			if getErr != nil || current == nil {
				return domain.ErrInsufficientStock
			}
			return &domain.InsufficientStockError{ProductID: p.ID, Available: current.StockQuantity, Requested: in.Quantity}
		}
		if err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		p.StockQuantity = qty
		applied, product = mov, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.MovementApplied(ctx, product, applied)
	return applied, nil
}

// ApplyMovementFromRequest adapta el request HTTP al caso de uso ApplyMovement.
func (uc *LedgerUseCase) ApplyMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	raw := in.Kind
	if raw == "" {
		raw = in.TipoMovimentacao
	}
	kind, ok := entity.ParseMovementKind(raw)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.ApplyMovement(ctx, MovementInput{ProductID: in.ProductID, Kind: kind, Quantity: in.Quantity})
	if err != nil {
		return nil, err
	}
	out := dto.MovementFromEntity(mov)
	return &out, nil
}

// ListByProduct devuelve los movimientos de un producto, más recientes primero.
// ErrNotFound si el producto no existe (también después de eliminarlo).
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByProduct(ctx, productID)
}

// ProductDetail producto más su historial, para la vista de detalle.
func (uc *LedgerUseCase) ProductDetail(ctx context.Context, productID int64) (*dto.ProductDetailResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		Product:   dto.ProductFromEntity(p),
		Movements: dto.MovementsFromEntities(movements),
	}, nil
}
