package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant representa un SKU vendible: una motocicleta concreta por marca,
// modelo, color y cilindraje. La identidad es inmutable; el precio de lista
// se puede ajustar pero cada línea de orden congela su propio precio.
type Variant struct {
	ID        string
	SKU       string
	Name      string
	Brand     string
	Model     string
	Color     string
	EngineCC  int
	Price     decimal.Decimal // precio de venta de lista (COP)
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft delete: visible para historial, no acepta lotes ni ventas nuevas
}

// IsDeleted indica si la variante fue eliminada (soft delete).
func (v *Variant) IsDeleted() bool {
	return v.DeletedAt != nil
}
