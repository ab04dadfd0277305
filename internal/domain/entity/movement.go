package entity

import (
	"strings"
	"time"
)

// MovementKind tipo de movimiento del libro.
type MovementKind string

// Tipos de movimiento de estoque.
const (
	MovementIN  MovementKind = "IN"  // entrada
	MovementOUT MovementKind = "OUT" // salida
)

// Valid indica si el tipo es IN u OUT.
func (k MovementKind) Valid() bool {
	return k == MovementIN || k == MovementOUT
}

// ParseMovementKind acepta IN/OUT y los valores de formulario entrada/saida (sin distinguir mayúsculas).
func ParseMovementKind(s string) (MovementKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "entrada":
		return MovementIN, true
	case "out", "saida", "saída":
		return MovementOUT, true
	}
	return "", false
}

// Movement entrada inmutable del libro de movimientos. Pertenece al producto:
// se elimina junto con él.
type Movement struct {
	ID        int64
	ProductID int64
	Kind      MovementKind
	Quantity  int // siempre positivo; el signo lo da Kind
	CreatedAt time.Time
}

// Delta devuelve la variación de estoque que produce el movimiento.
func (m *Movement) Delta() int {
	if m.Kind == MovementOUT {
		return -m.Quantity
	}
	return m.Quantity
}
