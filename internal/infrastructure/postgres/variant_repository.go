package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de persistencia para variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste una variante nueva. SKU duplicado devuelve ErrDuplicate.
func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	query := `
		INSERT INTO variants (id, sku, name, brand, model, color, engine_cc, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.SKU, v.Name, v.Brand, v.Model, v.Color, v.EngineCC, v.Price, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID, incluidas las eliminadas (historial).
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	query := `
		SELECT id, sku, name, brand, model, color, engine_cc, price, created_at, updated_at, deleted_at
		FROM variants WHERE id = $1`
	var v entity.Variant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.SKU, &v.Name, &v.Brand, &v.Model, &v.Color, &v.EngineCC, &v.Price,
		&v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// GetBySKU obtiene una variante activa por SKU.
func (r *VariantRepo) GetBySKU(ctx context.Context, sku string) (*entity.Variant, error) {
	query := `
		SELECT id, sku, name, brand, model, color, engine_cc, price, created_at, updated_at, deleted_at
		FROM variants WHERE sku = $1 AND deleted_at IS NULL`
	var v entity.Variant
	err := r.q.QueryRow(ctx, query, sku).Scan(
		&v.ID, &v.SKU, &v.Name, &v.Brand, &v.Model, &v.Color, &v.EngineCC, &v.Price,
		&v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant by sku: %w", err)
	}
	return &v, nil
}

// Update actualiza los campos editables. El SKU es inmutable.
func (r *VariantRepo) Update(ctx context.Context, v *entity.Variant) error {
	query := `
		UPDATE variants SET name = $2, brand = $3, model = $4, color = $5, engine_cc = $6, price = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Name, v.Brand, v.Model, v.Color, v.EngineCC, v.Price, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update variant: %w", err)
	}
	return nil
}

// List lista variantes activas con paginación.
func (r *VariantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Variant, error) {
	query := `
		SELECT id, sku, name, brand, model, color, engine_cc, price, created_at, updated_at, deleted_at
		FROM variants WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.SKU, &v.Name, &v.Brand, &v.Model, &v.Color, &v.EngineCC, &v.Price,
			&v.CreatedAt, &v.UpdatedAt, &v.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// SoftDelete marca la variante como eliminada; los lotes y líneas que la
// referencian siguen siendo legibles.
func (r *VariantRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE variants SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete variant: %w", err)
	}
	return nil
}
