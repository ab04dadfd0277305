package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
// Kind acepta IN/OUT; TipoMovimentacao acepta entrada/saida (se usa si Kind viene vacío).
type RegisterMovementRequest struct {
	ProductID        int64  `json:"product_id"`
	Kind             string `json:"kind,omitempty"`
	TipoMovimentacao string `json:"tipo_movimentacao,omitempty"`
	Quantity         int    `json:"quantity"`
}

// MovementResponse salida de una entrada del libro.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse lista de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
