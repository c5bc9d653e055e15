package entity

import "time"

// Estados de un recibo de compra. La transición es monótona: de working se
// pasa a finished o cancelled, ambos terminales.
const (
	ReceiptStatusWorking   = "working"   // en elaboración: líneas editables, lotes aún no disponibles
	ReceiptStatusFinished  = "finished"  // lotes comprometidos al libro, recibo inmutable
	ReceiptStatusCancelled = "cancelled" // congelado sin efecto en el libro
)

// PurchaseReceipt agrupa los lotes de una entrega de un proveedor.
type PurchaseReceipt struct {
	ID         string
	SupplierID string
	Reference  string // número de remisión/factura del proveedor
	Status     string
	Notes      string
	CreatedBy  string
	FinishedBy string     // usuario que finalizó o canceló
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	Lines      []*Batch
}

// IsWorking indica si el recibo sigue en elaboración (editable).
func (r *PurchaseReceipt) IsWorking() bool {
	return r.Status == ReceiptStatusWorking
}

// CanTransitionTo valida la transición de estado del recibo: solo
// working → finished y working → cancelled.
func (r *PurchaseReceipt) CanTransitionTo(target string) bool {
	if r.Status != ReceiptStatusWorking {
		return false
	}
	return target == ReceiptStatusFinished || target == ReceiptStatusCancelled
}
