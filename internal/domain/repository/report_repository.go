package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// AvailabilityRow stock vendible por variante (Σ remaining de lotes de
// recibos finalizados).
type AvailabilityRow struct {
	VariantID string
	SKU       string
	Name      string
	Available int64
}

// ValuationRow valoración del inventario por variante: Σ (remaining × costo
// unitario del lote).
type ValuationRow struct {
	VariantID string
	SKU       string
	Name      string
	Units     int64
	Value     decimal.Decimal
}

// MarginRow margen por línea de orden completada: precio de venta congelado
// contra costo FIFO estampado.
type MarginRow struct {
	OrderID   string
	OrderCode string
	VariantID string
	SKU       string
	Quantity  int64
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal
	Margin    decimal.Decimal // (precio - costo) × cantidad
}

// ReportRepository consultas de solo lectura sobre el libro de lotes y las
// órdenes; no participa en transacciones.
type ReportRepository interface {
	Availability(ctx context.Context) ([]*AvailabilityRow, error)
	Valuation(ctx context.Context) ([]*ValuationRow, error)
	Margins(ctx context.Context, limit, offset int) ([]*MarginRow, error)
}
