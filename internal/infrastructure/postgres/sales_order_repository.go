package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación del puerto SalesOrderRepository sobre PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador de órdenes de venta. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const orderColumns = `id, code, customer_name, customer_phone, status, confirmed_by, status_changed_at, created_by, created_at, updated_at, deleted_at`

// Create persiste la orden y sus líneas.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (id, code, customer_name, customer_phone, status, status_changed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Code, o.CustomerName, o.CustomerPhone, o.Status, o.StatusChangedAt, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, l := range o.Lines {
		lineQuery := `
			INSERT INTO order_lines (id, order_id, variant_id, quantity, unit_price, unit_cost, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := r.q.Exec(ctx, lineQuery,
			l.ID, l.OrderID, l.VariantID, l.Quantity, l.UnitPrice, l.UnitCost, l.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE):
// dos transiciones concurrentes de la misma orden se serializan aquí.
func (r *SalesOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, id, true)
}

func (r *SalesOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.SalesOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM sales_orders WHERE id = $1 AND deleted_at IS NULL`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.SalesOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Code, &o.CustomerName, &o.CustomerPhone, &o.Status, &o.ConfirmedBy,
		&o.StatusChangedAt, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	lines, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *SalesOrderRepo) listLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, variant_id, quantity, unit_price, unit_cost, created_at
		FROM order_lines WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.VariantID, &l.Quantity, &l.UnitPrice, &l.UnitCost, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateStatus mueve la orden al estado destino y registra quién confirmó.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, id, status, confirmedBy string, at time.Time) error {
	query := `
		UPDATE sales_orders SET status = $2, confirmed_by = $3, status_changed_at = $4, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(ctx, query, id, status, confirmedBy, at)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// StampLineCost escribe el costo FIFO de la línea; solo si aún no tiene
// costo, el estampado es de una sola vez.
func (r *SalesOrderRepo) StampLineCost(ctx context.Context, lineID string, unitCost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE order_lines SET unit_cost = $2 WHERE id = $1 AND unit_cost IS NULL`,
		lineID, unitCost,
	)
	if err != nil {
		return fmt.Errorf("stamp line cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	return nil
}

// List lista órdenes, opcionalmente filtradas por estado, sin líneas.
func (r *SalesOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM sales_orders WHERE deleted_at IS NULL`
	args := []any{limit, offset}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.Code, &o.CustomerName, &o.CustomerPhone, &o.Status, &o.ConfirmedBy,
			&o.StatusChangedAt, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// SoftDelete marca la orden como eliminada (solo pending o cancelled).
func (r *SalesOrderRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sales_orders SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete order: %w", err)
	}
	return nil
}
