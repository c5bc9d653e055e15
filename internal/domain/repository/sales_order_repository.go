package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para órdenes de
// venta. GetByID incluye las líneas.
type SalesOrderRepository interface {
	Create(ctx context.Context, o *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetByIDForUpdate bloquea la fila de la orden para que dos transiciones
	// concurrentes de la misma orden se serialicen.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	UpdateStatus(ctx context.Context, id, status, confirmedBy string, at time.Time) error
	// StampLineCost escribe el costo unitario asignado en la línea; se llama
	// exactamente una vez por línea, dentro de la transacción de asignación.
	StampLineCost(ctx context.Context, lineID string, unitCost decimal.Decimal) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
