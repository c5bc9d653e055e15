package purchasing

import (
	"context"

	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el cambio de
// estado del recibo y la publicación de sus lotes al libro, y permite
// bloquear la fila del proveedor al crear recibos (serializa contra el
// guard de borrado de proveedores).
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		receiptRepo repository.PurchaseReceiptRepository,
		batchRepo repository.BatchRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
