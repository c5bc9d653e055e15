package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

var _ repository.PurchaseReceiptRepository = (*PurchaseReceiptRepo)(nil)

// PurchaseReceiptRepo implementación del puerto PurchaseReceiptRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseReceiptRepo struct {
	q Querier
}

// NewPurchaseReceiptRepository construye el adaptador de recibos de compra. Pasar pool o tx (Querier).
func NewPurchaseReceiptRepository(q Querier) *PurchaseReceiptRepo {
	return &PurchaseReceiptRepo{q: q}
}

const receiptColumns = `id, supplier_id, reference, status, notes, created_by, finished_by, finished_at, created_at, updated_at, deleted_at`

// Create persiste el encabezado del recibo; las líneas van por BatchRepository.
func (r *PurchaseReceiptRepo) Create(ctx context.Context, rec *entity.PurchaseReceipt) error {
	query := `
		INSERT INTO purchase_receipts (id, supplier_id, reference, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.SupplierID, rec.Reference, rec.Status, rec.Notes, rec.CreatedBy, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// GetByID obtiene un recibo con sus líneas.
func (r *PurchaseReceiptRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseReceipt, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene el recibo bloqueando su fila (SELECT FOR UPDATE):
// dos finalizaciones concurrentes del mismo recibo se serializan aquí.
func (r *PurchaseReceiptRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseReceipt, error) {
	return r.get(ctx, id, true)
}

func (r *PurchaseReceiptRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.PurchaseReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM purchase_receipts WHERE id = $1 AND deleted_at IS NULL`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var rec entity.PurchaseReceipt
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.SupplierID, &rec.Reference, &rec.Status, &rec.Notes, &rec.CreatedBy,
		&rec.FinishedBy, &rec.FinishedAt, &rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	lines, err := NewBatchRepository(r.q).ListByReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines
	return &rec, nil
}

// UpdateInfo actualiza referencia y notas del encabezado.
func (r *PurchaseReceiptRepo) UpdateInfo(ctx context.Context, rec *entity.PurchaseReceipt) error {
	query := `
		UPDATE purchase_receipts SET supplier_id = $2, reference = $3, notes = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.SupplierID, rec.Reference, rec.Notes, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	return nil
}

// UpdateStatus congela el recibo en finished o cancelled y registra quién.
func (r *PurchaseReceiptRepo) UpdateStatus(ctx context.Context, id, status, finishedBy string, at time.Time) error {
	query := `
		UPDATE purchase_receipts SET status = $2, finished_by = $3, finished_at = $4, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, id, status, finishedBy, at)
	if err != nil {
		return fmt.Errorf("update receipt status: %w", err)
	}
	return nil
}

// List lista recibos, opcionalmente filtrados por estado, sin líneas (los
// listados no las necesitan y evitan el N+1).
func (r *PurchaseReceiptRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM purchase_receipts WHERE deleted_at IS NULL`
	args := []any{limit, offset}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseReceipt
	for rows.Next() {
		var rec entity.PurchaseReceipt
		if err := rows.Scan(&rec.ID, &rec.SupplierID, &rec.Reference, &rec.Status, &rec.Notes, &rec.CreatedBy,
			&rec.FinishedBy, &rec.FinishedAt, &rec.CreatedAt, &rec.UpdatedAt, &rec.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan receipt: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// SoftDelete marca el recibo como eliminado (solo recibos working).
func (r *PurchaseReceiptRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE purchase_receipts SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete receipt: %w", err)
	}
	return nil
}
