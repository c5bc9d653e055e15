package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	// GetByIDForUpdate bloquea la fila del proveedor (FOR UPDATE) dentro de
	// la transacción actual; serializa el guard de borrado con la creación
	// de recibos sobre el mismo proveedor.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	// HasWorkingReceipts indica si el proveedor tiene recibos en elaboración
	// (guard de borrado: invariante referencial del agregado).
	HasWorkingReceipts(ctx context.Context, supplierID string) (bool, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
