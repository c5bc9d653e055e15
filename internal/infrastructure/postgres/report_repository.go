package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación para reportes; lee directo del pool,
// fuera de cualquier transacción.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Availability stock vendible por variante: Σ remaining de lotes de recibos
// finalizados. Variantes eliminadas no aparecen.
func (r *ReportRepo) Availability(ctx context.Context) ([]*repository.AvailabilityRow, error) {
	query := `
		SELECT v.id, v.sku, v.name, COALESCE(SUM(b.remaining), 0) AS available
		FROM variants v
		LEFT JOIN batches b ON b.variant_id = v.id AND b.remaining > 0
			AND EXISTS (
				SELECT 1 FROM purchase_receipts pr
				WHERE pr.id = b.receipt_id AND pr.status = 'finished' AND pr.deleted_at IS NULL
			)
		WHERE v.deleted_at IS NULL
		GROUP BY v.id, v.sku, v.name
		ORDER BY v.sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("availability report: %w", err)
	}
	defer rows.Close()
	var list []*repository.AvailabilityRow
	for rows.Next() {
		var row repository.AvailabilityRow
		if err := rows.Scan(&row.VariantID, &row.SKU, &row.Name, &row.Available); err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Valuation valoración del inventario por variante: Σ (remaining × costo
// unitario de cada lote).
func (r *ReportRepo) Valuation(ctx context.Context) ([]*repository.ValuationRow, error) {
	query := `
		SELECT v.id, v.sku, v.name,
		       COALESCE(SUM(b.remaining), 0) AS units,
		       COALESCE(SUM(b.remaining * b.unit_cost), 0) AS value
		FROM variants v
		JOIN batches b ON b.variant_id = v.id AND b.remaining > 0
		JOIN purchase_receipts pr ON pr.id = b.receipt_id
		WHERE v.deleted_at IS NULL AND pr.status = 'finished' AND pr.deleted_at IS NULL
		GROUP BY v.id, v.sku, v.name
		ORDER BY value DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("valuation report: %w", err)
	}
	defer rows.Close()
	var list []*repository.ValuationRow
	for rows.Next() {
		var row repository.ValuationRow
		if err := rows.Scan(&row.VariantID, &row.SKU, &row.Name, &row.Units, &row.Value); err != nil {
			return nil, fmt.Errorf("scan valuation row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Margins margen por línea de orden completada: precio congelado contra
// costo FIFO estampado.
func (r *ReportRepo) Margins(ctx context.Context, limit, offset int) ([]*repository.MarginRow, error) {
	query := `
		SELECT o.id, o.code, l.variant_id, v.sku, l.quantity, l.unit_price, l.unit_cost,
		       (l.unit_price - l.unit_cost) * l.quantity AS margin
		FROM sales_orders o
		JOIN order_lines l ON l.order_id = o.id
		JOIN variants v ON v.id = l.variant_id
		WHERE o.status = 'completed' AND o.deleted_at IS NULL AND l.unit_cost IS NOT NULL
		ORDER BY o.status_changed_at DESC, l.created_at
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("margins report: %w", err)
	}
	defer rows.Close()
	var list []*repository.MarginRow
	for rows.Next() {
		var row repository.MarginRow
		if err := rows.Scan(&row.OrderID, &row.OrderCode, &row.VariantID, &row.SKU,
			&row.Quantity, &row.UnitPrice, &row.UnitCost, &row.Margin); err != nil {
			return nil, fmt.Errorf("scan margin row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
