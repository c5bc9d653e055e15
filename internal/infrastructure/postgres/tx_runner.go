package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/motostock-api/internal/application/catalog"
	"github.com/tu-usuario/motostock-api/internal/application/purchasing"
	"github.com/tu-usuario/motostock-api/internal/application/sales"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-level runners.
var _ catalog.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, acota la espera por filas bloqueadas y hace
// Commit o Rollback. Un lock_timeout vencido sale como ErrConcurrencyConflict
// en vez de dejar la petición colgada detrás de otro escritor.
func (r *TxRunner) run(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '3s'`); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	if err := fn(tx); err != nil {
		if isLockConflict(err) {
			return domain.ErrConcurrencyConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isLockConflict(err) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalog transacción con repo de proveedores (borrado múltiple todo-o-nada).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(supplierRepo repository.SupplierRepository) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewSupplierRepository(tx))
	})
}

// RunPurchasing transacción con repos de recibos, lotes y proveedores
// (creación, edición y finalización de recibos).
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	receiptRepo repository.PurchaseReceiptRepository,
	batchRepo repository.BatchRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewPurchaseReceiptRepository(tx), NewBatchRepository(tx), NewSupplierRepository(tx))
	})
}

// RunSales transacción con repos de órdenes y lotes (transiciones de estado
// con asignación FIFO y devoluciones).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	orderRepo repository.SalesOrderRepository,
	batchRepo repository.BatchRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(NewSalesOrderRepository(tx), NewBatchRepository(tx))
	})
}
