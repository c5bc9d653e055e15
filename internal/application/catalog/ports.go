package catalog

import (
	"context"

	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de proveedores atado a esa tx. Lo usa el borrado múltiple de
// proveedores para que sea todo-o-nada.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(supplierRepo repository.SupplierRepository) error) error
}
