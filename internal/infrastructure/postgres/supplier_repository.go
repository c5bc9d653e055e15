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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor nuevo. NIT duplicado devuelve ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, tax_id, phone, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.TaxID, s.Phone, s.Email, s.Address, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID, incluidos los eliminados.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene el proveedor bloqueando su fila. Solo tiene
// sentido dentro de una transacción del TxRunner.
func (r *SupplierRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.get(ctx, id, true)
}

func (r *SupplierRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Supplier, error) {
	query := `
		SELECT id, name, tax_id, phone, email, address, created_at, updated_at, deleted_at
		FROM suppliers WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Phone, &s.Email, &s.Address, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update actualiza los campos editables de un proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, tax_id = $3, phone = $4, email = $5, address = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.TaxID, s.Phone, s.Email, s.Address, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// List lista proveedores activos con paginación.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, tax_id, phone, email, address, created_at, updated_at, deleted_at
		FROM suppliers WHERE deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Phone, &s.Email, &s.Address,
			&s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// HasWorkingReceipts indica si el proveedor tiene recibos en elaboración
// (guard del borrado).
func (r *SupplierRepo) HasWorkingReceipts(ctx context.Context, supplierID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM purchase_receipts
			WHERE supplier_id = $1 AND status = 'working' AND deleted_at IS NULL
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, supplierID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check working receipts: %w", err)
	}
	return exists, nil
}

// SoftDelete marca el proveedor como eliminado.
func (r *SupplierRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE suppliers SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete supplier: %w", err)
	}
	return nil
}
