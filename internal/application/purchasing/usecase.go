package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// ReceiptUseCase casos de uso de recibos de compra: CRUD mientras el recibo
// está en elaboración y la máquina de estados working → finished|cancelled.
type ReceiptUseCase struct {
	txRunner     TxRunner
	receiptRepo  repository.PurchaseReceiptRepository
	batchRepo    repository.BatchRepository
	variantRepo  repository.VariantRepository
	supplierRepo repository.SupplierRepository
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner TxRunner,
	receiptRepo repository.PurchaseReceiptRepository,
	batchRepo repository.BatchRepository,
	variantRepo repository.VariantRepository,
	supplierRepo repository.SupplierRepository,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:     txRunner,
		receiptRepo:  receiptRepo,
		batchRepo:    batchRepo,
		variantRepo:  variantRepo,
		supplierRepo: supplierRepo,
	}
}

// Create crea un recibo en estado working, opcionalmente con líneas.
// Las variantes de las líneas deben existir y no estar eliminadas.
func (uc *ReceiptUseCase) Create(ctx context.Context, userID string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	for _, line := range in.Lines {
		if err := uc.validateLine(ctx, line.VariantID, line.Quantity, line.UnitCost.IsNegative()); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	receipt := &entity.PurchaseReceipt{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Reference:  in.Reference,
		Status:     entity.ReceiptStatusWorking,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, line := range in.Lines {
		receipt.Lines = append(receipt.Lines, &entity.Batch{
			ID:        uuid.New().String(),
			ReceiptID: receipt.ID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			Remaining: line.Quantity,
			CreatedAt: now,
		})
	}

	err := uc.txRunner.RunPurchasing(ctx, func(
		receiptRepo repository.PurchaseReceiptRepository,
		batchRepo repository.BatchRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		// Bloquea la fila del proveedor: un borrado concurrente espera aquí
		// y su guard verá este recibo working, o este Create verá el borrado.
		supplier, err := supplierRepo.GetByIDForUpdate(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil || supplier.IsDeleted() {
			return domain.ErrNotFound
		}
		if err := receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}
		for _, b := range receipt.Lines {
			if err := batchRepo.Create(ctx, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt), nil
}

// AddLine agrega una línea a un recibo en elaboración. La verificación de
// estado y la inserción ocurren en la misma transacción, con la fila del
// recibo bloqueada: un Finish concurrente no puede colarse entre ambas y
// convertir la línea en stock vivo.
func (uc *ReceiptUseCase) AddLine(ctx context.Context, receiptID string, in dto.ReceiptLineRequest) (*dto.ReceiptLineResponse, error) {
	if err := uc.validateLine(ctx, in.VariantID, in.Quantity, in.UnitCost.IsNegative()); err != nil {
		return nil, err
	}
	now := time.Now()
	batch := &entity.Batch{
		ID:        uuid.New().String(),
		ReceiptID: receiptID,
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Remaining: in.Quantity,
		CreatedAt: now,
	}
	err := uc.txRunner.RunPurchasing(ctx, func(
		receiptRepo repository.PurchaseReceiptRepository,
		batchRepo repository.BatchRepository,
		_ repository.SupplierRepository,
	) error {
		if _, err := mutableReceipt(ctx, receiptRepo, receiptID); err != nil {
			return err
		}
		return batchRepo.Create(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	resp := toLineResponse(batch)
	return &resp, nil
}

// UpdateLine edita cantidad o costo de una línea de un recibo en elaboración.
func (uc *ReceiptUseCase) UpdateLine(ctx context.Context, receiptID, lineID string, in dto.UpdateReceiptLineRequest) (*dto.ReceiptLineResponse, error) {
	var batch *entity.Batch
	err := uc.txRunner.RunPurchasing(ctx, func(
		receiptRepo repository.PurchaseReceiptRepository,
		batchRepo repository.BatchRepository,
		_ repository.SupplierRepository,
	) error {
		if _, err := mutableReceipt(ctx, receiptRepo, receiptID); err != nil {
			return err
		}
		var err error
		batch, err = batchRepo.GetByID(ctx, lineID)
		if err != nil {
			return err
		}
		if batch == nil || batch.ReceiptID != receiptID {
			return domain.ErrNotFound
		}
		if in.Quantity != nil {
			if *in.Quantity < 1 {
				return domain.ErrInvalidInput
			}
			batch.Quantity = *in.Quantity
			batch.Remaining = *in.Quantity // el recibo sigue working: nada asignado aún
		}
		if in.UnitCost != nil {
			if in.UnitCost.IsNegative() {
				return domain.ErrInvalidInput
			}
			batch.UnitCost = *in.UnitCost
		}
		return batchRepo.Update(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	resp := toLineResponse(batch)
	return &resp, nil
}

// RemoveLine elimina una línea de un recibo en elaboración.
func (uc *ReceiptUseCase) RemoveLine(ctx context.Context, receiptID, lineID string) error {
	return uc.txRunner.RunPurchasing(ctx, func(
		receiptRepo repository.PurchaseReceiptRepository,
		batchRepo repository.BatchRepository,
		_ repository.SupplierRepository,
	) error {
		if _, err := mutableReceipt(ctx, receiptRepo, receiptID); err != nil {
			return err
		}
		batch, err := batchRepo.GetByID(ctx, lineID)
		if err != nil {
			return err
		}
		if batch == nil || batch.ReceiptID != receiptID {
			return domain.ErrNotFound
		}
		return batchRepo.Delete(ctx, lineID)
	})
}

// UpdateInfo edita el encabezado (proveedor, referencia, notas) de un recibo
// en elaboración.
func (uc *ReceiptUseCase) UpdateInfo(ctx context.Context, receiptID string, in dto.UpdateReceiptRequest) (*dto.ReceiptResponse, error) {
	var receipt *entity.PurchaseReceipt
	err := uc.txRunner.RunPurchasing(ctx, func(
		receiptRepo repository.PurchaseReceiptRepository,
		_ repository.BatchRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		var err error
		receipt, err = mutableReceipt(ctx, receiptRepo, receiptID)
		if err != nil {
			return err
		}
		if in.SupplierID != nil && *in.SupplierID != receipt.SupplierID {
			supplier, err := supplierRepo.GetByIDForUpdate(ctx, *in.SupplierID)
			if err != nil {
				return err
			}
			if supplier == nil || supplier.IsDeleted() {
				return domain.ErrNotFound
			}
			receipt.SupplierID = *in.SupplierID
		}
		if in.Reference != nil {
			receipt.Reference = *in.Reference
		}
		if in.Notes != nil {
			receipt.Notes = *in.Notes
		}
		receipt.UpdatedAt = time.Now()
		return receiptRepo.UpdateInfo(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt), nil
}

// GetByID obtiene un recibo con sus líneas.
func (uc *ReceiptUseCase) GetByID(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return toReceiptResponse(receipt), nil
}

// List lista recibos, opcionalmente filtrados por estado.
func (uc *ReceiptUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.ReceiptListResponse, error) {
	list, err := uc.receiptRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceiptResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReceiptResponse(r))
	}
	return &dto.ReceiptListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete borra (soft) un recibo; solo permitido en estado working. Los
// lotes de un recibo finalizado pueden estar parcialmente consumidos y no
// se eliminan nunca.
func (uc *ReceiptUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunPurchasing(ctx, func(
		receiptRepo repository.PurchaseReceiptRepository,
		_ repository.BatchRepository,
		_ repository.SupplierRepository,
	) error {
		if _, err := mutableReceipt(ctx, receiptRepo, id); err != nil {
			return err
		}
		return receiptRepo.SoftDelete(ctx, id, time.Now())
	})
}

// mutableReceipt carga el recibo con su fila bloqueada y exige estado
// working; cualquier intento de edición sobre un recibo congelado devuelve
// ErrAlreadyFinalized. El bloqueo serializa las ediciones contra Finish y
// Cancel: el recibo no puede congelarse a mitad de una edición.
func mutableReceipt(ctx context.Context, receiptRepo repository.PurchaseReceiptRepository, id string) (*entity.PurchaseReceipt, error) {
	receipt, err := receiptRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	if !receipt.IsWorking() {
		return nil, domain.ErrAlreadyFinalized
	}
	return receipt, nil
}

func (uc *ReceiptUseCase) validateLine(ctx context.Context, variantID string, qty int64, negativeCost bool) error {
	if qty < 1 || negativeCost {
		return domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByID(ctx, variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	if variant.IsDeleted() {
		// Variante eliminada: válida para historial, no acepta lotes nuevos.
		return domain.ErrInvalidInput
	}
	return nil
}

func toLineResponse(b *entity.Batch) dto.ReceiptLineResponse {
	return dto.ReceiptLineResponse{
		ID:        b.ID,
		VariantID: b.VariantID,
		Quantity:  b.Quantity,
		UnitCost:  b.UnitCost,
		Remaining: b.Remaining,
		CreatedAt: b.CreatedAt,
	}
}

func toReceiptResponse(r *entity.PurchaseReceipt) *dto.ReceiptResponse {
	lines := make([]dto.ReceiptLineResponse, 0, len(r.Lines))
	for _, b := range r.Lines {
		lines = append(lines, toLineResponse(b))
	}
	return &dto.ReceiptResponse{
		ID:         r.ID,
		SupplierID: r.SupplierID,
		Reference:  r.Reference,
		Status:     r.Status,
		Notes:      r.Notes,
		CreatedBy:  r.CreatedBy,
		FinishedBy: r.FinishedBy,
		FinishedAt: r.FinishedAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Lines:      lines,
	}
}
