package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch es una línea de recibo de compra: una cantidad de unidades de una
// variante con su costo unitario de compra. Una vez finalizado el recibo, el
// lote entra al libro de inventario y Remaining solo decrece por asignación
// FIFO (o se repone al confirmar una devolución).
//
// Invariante: 0 <= Remaining <= Quantity. CreatedAt define el orden FIFO.
type Batch struct {
	ID        string
	ReceiptID string
	VariantID string
	Quantity  int64           // cantidad comprada
	UnitCost  decimal.Decimal // costo unitario de compra (COP)
	Remaining int64           // unidades aún no vendidas
	CreatedAt time.Time
}

// BatchAllocation registra cuántas unidades de un lote consumió una línea de
// orden y a qué costo. Permite revertir el stock al confirmar una devolución
// y auditar la composición del costo de cada venta.
type BatchAllocation struct {
	ID          string
	OrderID     string
	OrderLineID string
	BatchID     string
	Quantity    int64
	UnitCost    decimal.Decimal
	CreatedAt   time.Time
}
