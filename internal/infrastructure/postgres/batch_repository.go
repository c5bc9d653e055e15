package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del libro de lotes sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador del libro de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo; remaining nace igual a quantity.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, receipt_id, variant_id, quantity, unit_cost, remaining, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ReceiptID, b.VariantID, b.Quantity, b.UnitCost, b.Remaining, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, receipt_id, variant_id, quantity, unit_cost, remaining, created_at
		FROM batches WHERE id = $1`
	var b entity.Batch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ReceiptID, &b.VariantID, &b.Quantity, &b.UnitCost, &b.Remaining, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// Update reescribe cantidad, costo y remanente; solo es válido mientras el
// recibo está en elaboración (el caso de uso lo garantiza).
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches SET variant_id = $2, quantity = $3, unit_cost = $4, remaining = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, b.ID, b.VariantID, b.Quantity, b.UnitCost, b.Remaining)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// Delete elimina físicamente una línea de recibo en elaboración.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// ListByReceipt lista los lotes de un recibo en orden de creación.
func (r *BatchRepo) ListByReceipt(ctx context.Context, receiptID string) ([]*entity.Batch, error) {
	query := `
		SELECT id, receipt_id, variant_id, quantity, unit_cost, remaining, created_at
		FROM batches WHERE receipt_id = $1 ORDER BY created_at`
	return r.queryBatches(ctx, query, receiptID)
}

// ListAvailableForUpdate devuelve los lotes vendibles de la variante en
// orden FIFO, bloqueados con FOR UPDATE. Solo cuentan los lotes de recibos
// finalizados con remanente positivo; este SELECT es el punto de
// serialización por variante: dos asignaciones concurrentes de la misma
// variante se encolan aquí.
func (r *BatchRepo) ListAvailableForUpdate(ctx context.Context, variantID string) ([]*entity.Batch, error) {
	query := `
		SELECT b.id, b.receipt_id, b.variant_id, b.quantity, b.unit_cost, b.remaining, b.created_at
		FROM batches b
		JOIN purchase_receipts pr ON pr.id = b.receipt_id
		WHERE b.variant_id = $1
		  AND b.remaining > 0
		  AND pr.status = 'finished'
		  AND pr.deleted_at IS NULL
		ORDER BY b.created_at, b.id
		FOR UPDATE OF b`
	return r.queryBatches(ctx, query, variantID)
}

// ApplyDeduction descuenta qty del remanente con guarda en el UPDATE. Cero
// filas afectadas significa que otro escritor consumió el lote entre el
// SELECT y este UPDATE; no debería pasar con las filas bloqueadas, pero la
// guarda mantiene el invariante remaining >= 0 pase lo que pase.
func (r *BatchRepo) ApplyDeduction(ctx context.Context, batchID string, qty int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE batches SET remaining = remaining - $2 WHERE id = $1 AND remaining >= $2`,
		batchID, qty,
	)
	if err != nil {
		return fmt.Errorf("apply deduction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

// Restore repone qty unidades al lote sin superar su cantidad original.
func (r *BatchRepo) Restore(ctx context.Context, batchID string, qty int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE batches SET remaining = LEAST(remaining + $2, quantity) WHERE id = $1`,
		batchID, qty,
	)
	if err != nil {
		return fmt.Errorf("restore batch: %w", err)
	}
	return nil
}

// CreateAllocation registra una deducción orden→lote; es el rastro que
// permite reponer stock en una devolución.
func (r *BatchRepo) CreateAllocation(ctx context.Context, a *entity.BatchAllocation) error {
	query := `
		INSERT INTO batch_allocations (id, order_id, order_line_id, batch_id, quantity, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.OrderID, a.OrderLineID, a.BatchID, a.Quantity, a.UnitCost, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

// ListAllocationsByOrder lista las deducciones registradas de una orden.
func (r *BatchRepo) ListAllocationsByOrder(ctx context.Context, orderID string) ([]*entity.BatchAllocation, error) {
	query := `
		SELECT id, order_id, order_line_id, batch_id, quantity, unit_cost, created_at
		FROM batch_allocations WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchAllocation
	for rows.Next() {
		var a entity.BatchAllocation
		if err := rows.Scan(&a.ID, &a.OrderID, &a.OrderLineID, &a.BatchID, &a.Quantity, &a.UnitCost, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *BatchRepo) queryBatches(ctx context.Context, query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		var b entity.Batch
		if err := rows.Scan(&b.ID, &b.ReceiptID, &b.VariantID, &b.Quantity, &b.UnitCost, &b.Remaining, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
