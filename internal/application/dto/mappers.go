package dto

import "github.com/jhoicas/Estoque-api/internal/domain/entity"

// ProductFromEntity convierte la entidad a su representación de salida.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Category:         p.Category,
		Price:            p.Price,
		StockQuantity:    p.StockQuantity,
		ReorderThreshold: p.ReorderThreshold,
		LowStock:         p.IsLowStock(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ProductsFromEntities convierte una lista; nunca devuelve nil.
func ProductsFromEntities(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ProductFromEntity(p))
	}
	return out
}

// MovementFromEntity convierte una entrada del libro.
func MovementFromEntity(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
	}
}

// MovementsFromEntities convierte una lista; nunca devuelve nil.
func MovementsFromEntities(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementFromEntity(m))
	}
	return out
}

// UserFromEntity convierte un usuario sin exponer el hash.
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
