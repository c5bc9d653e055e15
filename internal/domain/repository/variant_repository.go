package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia para variantes (SKUs).
// Las lecturas excluyen eliminadas salvo GetByID, que las devuelve para
// historial (el caller decide con IsDeleted).
type VariantRepository interface {
	Create(ctx context.Context, v *entity.Variant) error
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Variant, error)
	Update(ctx context.Context, v *entity.Variant) error
	List(ctx context.Context, limit, offset int) ([]*entity.Variant, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
