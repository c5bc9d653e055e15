package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/inventory"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// Transition mueve una orden al estado destino validando la lista blanca de
// transiciones. Todo ocurre en una sola transacción:
//
//   - La fila de la orden se bloquea primero (FOR UPDATE): dos transiciones
//     concurrentes de la misma orden se serializan.
//   - Entrar a un estado comprometedor de stock (confirmed_cod, deposit_paid,
//     paid_processing) asigna FIFO línea por línea, estampa el costo unitario
//     y registra quién confirmó. Los lotes de cada variante se bloquean en
//     ListAvailableForUpdate: ese es el punto de serialización por variante.
//   - Si alguna línea no alcanza stock, toda la transición falla con
//     ErrInsufficientStock y no queda ninguna deducción parcial.
//   - Reintento idempotente: si la orden ya está en el estado destino y todas
//     las líneas tienen costo estampado, se responde éxito sin volver a
//     asignar (los remanentes no se tocan).
//   - refunding → refunded repone a cada lote lo que la orden le consumió,
//     usando los registros de asignación persistidos.
func (uc *OrderUseCase) Transition(ctx context.Context, orderID, targetStatus, userID string) error {
	if !entity.IsValidOrderStatus(targetStatus) {
		// Lista blanca: un estado desconocido falla cerrado.
		return domain.ErrInvalidTransition
	}

	return uc.txRunner.RunSales(ctx, func(
		orderRepo repository.SalesOrderRepository,
		batchRepo repository.BatchRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}

		if order.Status == targetStatus {
			if entity.IsStockCommittingStatus(targetStatus) && order.AllLinesCosted() {
				return nil // reintento del cliente: ya asignado, no tocar lotes
			}
			return domain.ErrInvalidTransition
		}
		if !order.CanTransitionTo(targetStatus) {
			return domain.ErrInvalidTransition
		}

		now := time.Now()

		if entity.IsStockCommittingStatus(targetStatus) {
			if err := uc.allocateLines(ctx, order, orderRepo, batchRepo, now); err != nil {
				return err
			}
			order.ConfirmedBy = userID
		}

		if targetStatus == entity.OrderStatusRefunded {
			if err := releaseAllocations(ctx, batchRepo, orderID); err != nil {
				return err
			}
		}

		return orderRepo.UpdateStatus(ctx, orderID, targetStatus, order.ConfirmedBy, now)
	})
}

// allocateLines ejecuta la asignación FIFO para cada línea sin costo. El
// asignador es puro: devuelve deducciones que aquí se aplican con guarda de
// remanente y se persisten como registros de asignación.
func (uc *OrderUseCase) allocateLines(
	ctx context.Context,
	order *entity.SalesOrder,
	orderRepo repository.SalesOrderRepository,
	batchRepo repository.BatchRepository,
	now time.Time,
) error {
	for _, line := range order.Lines {
		if line.HasCost() {
			// Guard de idempotencia por línea: nunca se asigna dos veces.
			continue
		}
		batches, err := batchRepo.ListAvailableForUpdate(ctx, line.VariantID)
		if err != nil {
			return err
		}
		views := make([]inventory.BatchView, 0, len(batches))
		for _, b := range batches {
			views = append(views, inventory.BatchView{ID: b.ID, Remaining: b.Remaining, UnitCost: b.UnitCost})
		}
		alloc, err := inventory.Allocate(views, line.Quantity)
		if err != nil {
			return err // ErrInsufficientStock revierte la transacción completa
		}
		for _, d := range alloc.Deductions {
			if err := batchRepo.ApplyDeduction(ctx, d.BatchID, d.Quantity); err != nil {
				return err
			}
			if err := batchRepo.CreateAllocation(ctx, &entity.BatchAllocation{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				OrderLineID: line.ID,
				BatchID:     d.BatchID,
				Quantity:    d.Quantity,
				UnitCost:    d.UnitCost,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}
		if err := orderRepo.StampLineCost(ctx, line.ID, alloc.UnitCost); err != nil {
			return err
		}
		cost := alloc.UnitCost
		line.UnitCost = &cost
	}
	return nil
}

// releaseAllocations repone el stock consumido por la orden (devolución
// confirmada): suma de vuelta cada deducción a su lote.
func releaseAllocations(ctx context.Context, batchRepo repository.BatchRepository, orderID string) error {
	allocations, err := batchRepo.ListAllocationsByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	for _, a := range allocations {
		if err := batchRepo.Restore(ctx, a.BatchID, a.Quantity); err != nil {
			return err
		}
	}
	return nil
}
