package purchasing

import (
	"context"
	"time"

	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// Finish transiciona working → finished: dentro de una transacción bloquea
// la fila del recibo, verifica la transición y congela el recibo registrando
// quién lo finalizó. Con el cambio de estado los lotes del recibo quedan
// disponibles para la asignación FIFO (la disponibilidad se deriva del
// estado del recibo, los remanentes ya están en quantity desde la creación
// de cada línea).
func (uc *ReceiptUseCase) Finish(ctx context.Context, receiptID, userID string) error {
	return uc.transition(ctx, receiptID, userID, entity.ReceiptStatusFinished)
}

// Cancel transiciona working → cancelled: congela el recibo sin efecto en el
// libro de lotes.
func (uc *ReceiptUseCase) Cancel(ctx context.Context, receiptID, userID string) error {
	return uc.transition(ctx, receiptID, userID, entity.ReceiptStatusCancelled)
}

func (uc *ReceiptUseCase) transition(ctx context.Context, receiptID, userID, target string) error {
	return uc.txRunner.RunPurchasing(ctx, func(
		receiptRepo repository.PurchaseReceiptRepository,
		batchRepo repository.BatchRepository,
		_ repository.SupplierRepository,
	) error {
		receipt, err := receiptRepo.GetByIDForUpdate(ctx, receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return domain.ErrNotFound
		}
		if !receipt.CanTransitionTo(target) {
			// finished y cancelled son terminales; no hay vuelta a working.
			return domain.ErrAlreadyFinalized
		}
		if target == entity.ReceiptStatusFinished && len(receipt.Lines) == 0 {
			return domain.ErrInvalidInput
		}
		return receiptRepo.UpdateStatus(ctx, receiptID, target, userID, time.Now())
	})
}
