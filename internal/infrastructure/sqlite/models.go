package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

// productModel fila de products. price se guarda como texto para conservar los centavos exactos.
type productModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	Code             string          `gorm:"size:50;not null;uniqueIndex"`
	Name             string          `gorm:"size:100;not null;index:idx_products_name,priority:1"`
	Category         string          `gorm:"size:50;not null;index"`
	Price            decimal.Decimal `gorm:"type:text;not null"`
	StockQuantity    int             `gorm:"not null;check:chk_products_stock,stock_quantity >= 0"`
	ReorderThreshold int             `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (productModel) TableName() string { return "products" }

type movementModel struct {
	ID        int64        `gorm:"primaryKey;autoIncrement"`
	ProductID int64        `gorm:"not null;index:idx_movements_product"`
	Product   productModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Kind      string       `gorm:"size:3;not null;index"`
	Quantity  int          `gorm:"not null;check:chk_movements_quantity,quantity > 0"`
	CreatedAt time.Time    `gorm:"not null;index"`
}

func (movementModel) TableName() string { return "movements" }

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"size:200;not null"`
	Role         string `gorm:"size:20;not null"`
	Status       string `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func productToModel(p *entity.Product) productModel {
	return productModel{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Category:         p.Category,
		Price:            p.Price,
		StockQuantity:    p.StockQuantity,
		ReorderThreshold: p.ReorderThreshold,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m productModel) toEntity() *entity.Product {
	return &entity.Product{
		ID:               m.ID,
		Code:             m.Code,
		Name:             m.Name,
		Category:         m.Category,
		Price:            m.Price,
		StockQuantity:    m.StockQuantity,
		ReorderThreshold: m.ReorderThreshold,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

func (m movementModel) toEntity() *entity.Movement {
	return &entity.Movement{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      entity.MovementKind(m.Kind),
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func (m userModel) toEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         m.Role,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}
