package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// PurchaseReceiptRepository define el puerto de persistencia para recibos de
// compra. GetByID incluye las líneas (lotes).
type PurchaseReceiptRepository interface {
	Create(ctx context.Context, r *entity.PurchaseReceipt) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseReceipt, error)
	// GetByIDForUpdate bloquea la fila del recibo (SELECT FOR UPDATE) para
	// serializar finalización/cancelación concurrentes.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseReceipt, error)
	UpdateInfo(ctx context.Context, r *entity.PurchaseReceipt) error
	UpdateStatus(ctx context.Context, id, status, finishedBy string, at time.Time) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseReceipt, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
