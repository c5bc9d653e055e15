package repository

import (
	"context"

	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// BatchRepository define el puerto del libro de lotes (batch ledger) y de sus
// registros de asignación. Las mutaciones de Remaining solo ocurren dentro de
// la transacción del coordinador, con las filas bloqueadas.
type BatchRepository interface {
	Create(ctx context.Context, b *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, b *entity.Batch) error
	// Delete elimina una línea físicamente; solo válido mientras el recibo
	// está en elaboración (el caso de uso lo garantiza).
	Delete(ctx context.Context, id string) error
	ListByReceipt(ctx context.Context, receiptID string) ([]*entity.Batch, error)

	// ListAvailableForUpdate devuelve los lotes vendibles de una variante
	// (recibo finished, remaining > 0) ordenados por creación ascendente
	// (FIFO) y bloqueados con SELECT ... FOR UPDATE. Este bloqueo es el
	// punto de serialización por variante.
	ListAvailableForUpdate(ctx context.Context, variantID string) ([]*entity.Batch, error)

	// ApplyDeduction descuenta qty del remanente del lote con guarda
	// remaining >= qty en el UPDATE; cero filas afectadas significa que otro
	// escritor ganó la carrera y se devuelve ErrConcurrencyConflict.
	ApplyDeduction(ctx context.Context, batchID string, qty int64) error

	// Restore repone qty unidades (devolución confirmada), sin superar la
	// cantidad original del lote.
	Restore(ctx context.Context, batchID string, qty int64) error

	CreateAllocation(ctx context.Context, a *entity.BatchAllocation) error
	ListAllocationsByOrder(ctx context.Context, orderID string) ([]*entity.BatchAllocation, error)
}
