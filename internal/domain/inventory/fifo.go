// Package inventory contiene el asignador de costos FIFO (servicio de
// dominio puro). No toca persistencia: recibe una vista de los lotes y
// devuelve las deducciones a aplicar; el caller las persiste dentro de su
// propia transacción.
package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/motostock-api/internal/domain"
)

// BatchView es la vista mínima de un lote que necesita el asignador.
type BatchView struct {
	ID        string
	Remaining int64
	UnitCost  decimal.Decimal
}

// Deduction indica cuántas unidades consumir de un lote y a qué costo.
type Deduction struct {
	BatchID  string
	Quantity int64
	UnitCost decimal.Decimal
}

// Allocation es el resultado de una asignación exitosa.
type Allocation struct {
	Deductions []Deduction
	TotalCost  decimal.Decimal
	UnitCost   decimal.Decimal // TotalCost / cantidad, redondeado al peso
}

// Allocate consume lotes en orden FIFO para cubrir qty unidades.
//
// Los lotes deben venir ordenados del más antiguo al más reciente; los de
// Remaining <= 0 se saltan aunque el repositorio ya los filtre.
// La función no muta sus entradas ni tiene efectos secundarios: si devuelve
// error, no hay nada que revertir.
//
// El costo unitario resultante es el promedio ponderado de lo consumido,
// redondeado a 0 decimales con mitad-lejos-de-cero (Round de shopspring);
// los precios son COP sin centavos. qty == 0 devuelve costo 0 sin deducciones.
// Si los lotes no alcanzan, devuelve domain.ErrInsufficientStock.
func Allocate(batches []BatchView, qty int64) (*Allocation, error) {
	if qty < 0 {
		return nil, domain.ErrInvalidInput
	}
	if qty == 0 {
		return &Allocation{UnitCost: decimal.Zero, TotalCost: decimal.Zero}, nil
	}

	needed := qty
	total := decimal.Zero
	deductions := make([]Deduction, 0, len(batches))

	for _, b := range batches {
		if needed == 0 {
			break
		}
		if b.Remaining <= 0 {
			continue
		}
		consumed := b.Remaining
		if needed < consumed {
			consumed = needed
		}
		total = total.Add(decimal.NewFromInt(consumed).Mul(b.UnitCost))
		deductions = append(deductions, Deduction{BatchID: b.ID, Quantity: consumed, UnitCost: b.UnitCost})
		needed -= consumed
	}

	if needed > 0 {
		return nil, domain.ErrInsufficientStock
	}

	unitCost := total.Div(decimal.NewFromInt(qty)).Round(0)
	return &Allocation{Deductions: deductions, TotalCost: total, UnitCost: unitCost}, nil
}
