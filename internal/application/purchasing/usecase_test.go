package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// ─── Fakes en memoria ─────────────────────────────────────────────────────────

type memReceiptRepo struct {
	receipts map[string]*entity.PurchaseReceipt
}

func newMemReceiptRepo() *memReceiptRepo {
	return &memReceiptRepo{receipts: map[string]*entity.PurchaseReceipt{}}
}

func (r *memReceiptRepo) Create(_ context.Context, rec *entity.PurchaseReceipt) error {
	r.receipts[rec.ID] = rec
	return nil
}

func (r *memReceiptRepo) GetByID(_ context.Context, id string) (*entity.PurchaseReceipt, error) {
	return r.receipts[id], nil
}

func (r *memReceiptRepo) GetByIDForUpdate(_ context.Context, id string) (*entity.PurchaseReceipt, error) {
	return r.receipts[id], nil
}

func (r *memReceiptRepo) UpdateInfo(_ context.Context, rec *entity.PurchaseReceipt) error {
	r.receipts[rec.ID] = rec
	return nil
}

func (r *memReceiptRepo) UpdateStatus(_ context.Context, id, status, finishedBy string, at time.Time) error {
	rec := r.receipts[id]
	rec.Status = status
	rec.FinishedBy = finishedBy
	rec.FinishedAt = &at
	return nil
}

func (r *memReceiptRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.PurchaseReceipt, error) {
	return nil, nil
}

func (r *memReceiptRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	if rec, ok := r.receipts[id]; ok {
		rec.DeletedAt = &at
	}
	return nil
}

type memVariantRepo struct {
	variants map[string]*entity.Variant
}

func (r *memVariantRepo) Create(_ context.Context, v *entity.Variant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *memVariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	return r.variants[id], nil
}

func (r *memVariantRepo) GetBySKU(_ context.Context, _ string) (*entity.Variant, error) {
	return nil, nil
}

func (r *memVariantRepo) Update(_ context.Context, _ *entity.Variant) error { return nil }

func (r *memVariantRepo) List(_ context.Context, _, _ int) ([]*entity.Variant, error) {
	return nil, nil
}

func (r *memVariantRepo) SoftDelete(_ context.Context, _ string, _ time.Time) error { return nil }

type memSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *memSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *memSupplierRepo) GetByIDForUpdate(_ context.Context, id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *memSupplierRepo) Update(_ context.Context, _ *entity.Supplier) error { return nil }

func (r *memSupplierRepo) List(_ context.Context, _, _ int) ([]*entity.Supplier, error) {
	return nil, nil
}

func (r *memSupplierRepo) HasWorkingReceipts(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *memSupplierRepo) SoftDelete(_ context.Context, _ string, _ time.Time) error { return nil }

type memBatchRepo struct {
	batches map[string]*entity.Batch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: map[string]*entity.Batch{}}
}

func (r *memBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	r.batches[b.ID] = b
	return nil
}

func (r *memBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return r.batches[id], nil
}

func (r *memBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	r.batches[b.ID] = b
	return nil
}

func (r *memBatchRepo) Delete(_ context.Context, id string) error {
	delete(r.batches, id)
	return nil
}

func (r *memBatchRepo) ListByReceipt(_ context.Context, receiptID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.batches {
		if b.ReceiptID == receiptID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) ListAvailableForUpdate(_ context.Context, _ string) ([]*entity.Batch, error) {
	return nil, nil
}

func (r *memBatchRepo) ApplyDeduction(_ context.Context, _ string, _ int64) error { return nil }
func (r *memBatchRepo) Restore(_ context.Context, _ string, _ int64) error        { return nil }

func (r *memBatchRepo) CreateAllocation(_ context.Context, _ *entity.BatchAllocation) error {
	return nil
}

func (r *memBatchRepo) ListAllocationsByOrder(_ context.Context, _ string) ([]*entity.BatchAllocation, error) {
	return nil, nil
}

// memPurchasingTxRunner pasa los repos tal cual; los campos son interfaces
// para que una prueba pueda envolver un repo y simular un escritor
// concurrente. Restaura los lotes si fn falla, como haría el rollback.
type memPurchasingTxRunner struct {
	receiptRepo  repository.PurchaseReceiptRepository
	batchRepo    *memBatchRepo
	supplierRepo repository.SupplierRepository
}

func (t *memPurchasingTxRunner) RunPurchasing(ctx context.Context, fn func(
	receiptRepo repository.PurchaseReceiptRepository,
	batchRepo repository.BatchRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	snapshot := make(map[string]entity.Batch, len(t.batchRepo.batches))
	for id, b := range t.batchRepo.batches {
		snapshot[id] = *b
	}
	if err := fn(t.receiptRepo, t.batchRepo, t.supplierRepo); err != nil {
		t.batchRepo.batches = map[string]*entity.Batch{}
		for id := range snapshot {
			b := snapshot[id]
			t.batchRepo.batches[id] = &b
		}
		return err
	}
	return nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

type purchasingFixture struct {
	uc           *ReceiptUseCase
	receiptRepo  *memReceiptRepo
	batchRepo    *memBatchRepo
	variantRepo  *memVariantRepo
	supplierRepo *memSupplierRepo
}

func newPurchasingFixture() *purchasingFixture {
	f := &purchasingFixture{
		receiptRepo:  newMemReceiptRepo(),
		batchRepo:    newMemBatchRepo(),
		variantRepo:  &memVariantRepo{variants: map[string]*entity.Variant{}},
		supplierRepo: &memSupplierRepo{suppliers: map[string]*entity.Supplier{}},
	}
	f.supplierRepo.suppliers["supplier-1"] = &entity.Supplier{ID: "supplier-1", Name: "Importadora Andina"}
	f.variantRepo.variants["variant-1"] = &entity.Variant{
		ID: "variant-1", SKU: "YBR125-NEGRA", Name: "Yamaha YBR 125 Negra",
		Price: decimal.NewFromInt(7_500_000),
	}
	f.uc = NewReceiptUseCase(
		&memPurchasingTxRunner{receiptRepo: f.receiptRepo, batchRepo: f.batchRepo, supplierRepo: f.supplierRepo},
		f.receiptRepo, f.batchRepo, f.variantRepo, f.supplierRepo,
	)
	return f
}

// ─── Creación y edición ───────────────────────────────────────────────────────

func TestCreateReceiptWithLines(t *testing.T) {
	f := newPurchasingFixture()

	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Reference:  "REM-0042",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 10, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReceiptStatusWorking, resp.Status)
	require.Len(t, resp.Lines, 1)
	// El remanente nace igual a la cantidad; la disponibilidad la decide el
	// estado del recibo, no el remanente.
	assert.Equal(t, int64(10), resp.Lines[0].Remaining)

	stored, err := f.batchRepo.ListByReceipt(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateReceiptRejectsDeletedVariant(t *testing.T) {
	f := newPurchasingFixture()
	deletedAt := time.Now()
	f.variantRepo.variants["variant-1"].DeletedAt = &deletedAt

	_, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 5, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateReceiptUnknownSupplier(t *testing.T) {
	f := newPurchasingFixture()

	_, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{SupplierID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Finalización ─────────────────────────────────────────────────────────────

func TestFinishFreezesReceipt(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 10, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Finish(context.Background(), resp.ID, "bodeguero-1"))

	stored := f.receiptRepo.receipts[resp.ID]
	assert.Equal(t, entity.ReceiptStatusFinished, stored.Status)
	assert.Equal(t, "bodeguero-1", stored.FinishedBy)
	require.NotNil(t, stored.FinishedAt)

	// Congelado: toda edición posterior se rechaza.
	_, err = f.uc.AddLine(context.Background(), resp.ID, dto.ReceiptLineRequest{
		VariantID: "variant-1", Quantity: 1, UnitCost: decimal.NewFromInt(5_000_000),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	qty := int64(3)
	_, err = f.uc.UpdateLine(context.Background(), resp.ID, resp.Lines[0].ID, dto.UpdateReceiptLineRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	err = f.uc.RemoveLine(context.Background(), resp.ID, resp.Lines[0].ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	err = f.uc.Delete(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestFinishEmptyReceiptRejected(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{SupplierID: "supplier-1"})
	require.NoError(t, err)

	err = f.uc.Finish(context.Background(), resp.ID, "bodeguero-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.ReceiptStatusWorking, f.receiptRepo.receipts[resp.ID].Status)
}

func TestFinishTwiceRejected(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 2, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Finish(context.Background(), resp.ID, "bodeguero-1"))

	err = f.uc.Finish(context.Background(), resp.ID, "bodeguero-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	err = f.uc.Cancel(context.Background(), resp.ID, "bodeguero-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestCancelFreezesWithoutLedgerEffect(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 4, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Cancel(context.Background(), resp.ID, "bodeguero-1"))

	stored := f.receiptRepo.receipts[resp.ID]
	assert.Equal(t, entity.ReceiptStatusCancelled, stored.Status)

	// Cancelar sí se permite sin líneas y no toca remanentes.
	batches, _ := f.batchRepo.ListByReceipt(context.Background(), resp.ID)
	for _, b := range batches {
		assert.Equal(t, b.Quantity, b.Remaining)
	}
}

// ─── Líneas mientras está working ─────────────────────────────────────────────

func TestUpdateLineResetsRemaining(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 4, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)

	qty := int64(7)
	cost := decimal.NewFromInt(5_200_000)
	line, err := f.uc.UpdateLine(context.Background(), resp.ID, resp.Lines[0].ID, dto.UpdateReceiptLineRequest{
		Quantity: &qty,
		UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), line.Quantity)
	assert.Equal(t, int64(7), line.Remaining)
	assert.True(t, line.UnitCost.Equal(cost))
}

func TestRemoveLineFromOtherReceiptRejected(t *testing.T) {
	f := newPurchasingFixture()
	ctx := context.Background()
	first, err := f.uc.Create(ctx, "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 2, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, "bodeguero-1", dto.CreateReceiptRequest{SupplierID: "supplier-1"})
	require.NoError(t, err)

	err = f.uc.RemoveLine(ctx, second.ID, first.Lines[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Escritores concurrentes ──────────────────────────────────────────────────

// finishOnLockReceiptRepo simula un Finish concurrente que gana el bloqueo de
// fila: la lectura sin bloqueo ve el recibo working, pero al tomar la fila el
// recibo ya quedó finished.
type finishOnLockReceiptRepo struct {
	*memReceiptRepo
}

func (r *finishOnLockReceiptRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PurchaseReceipt, error) {
	if rec := r.receipts[id]; rec != nil && rec.IsWorking() {
		now := time.Now()
		rec.Status = entity.ReceiptStatusFinished
		rec.FinishedBy = "bodeguero-2"
		rec.FinishedAt = &now
	}
	return r.memReceiptRepo.GetByIDForUpdate(ctx, id)
}

func TestAddLineWhileFinishCommitsRejected(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 10, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)

	// El mismo caso de uso, pero el recibo se congela justo al tomar la fila.
	racing := NewReceiptUseCase(
		&memPurchasingTxRunner{
			receiptRepo:  &finishOnLockReceiptRepo{memReceiptRepo: f.receiptRepo},
			batchRepo:    f.batchRepo,
			supplierRepo: f.supplierRepo,
		},
		f.receiptRepo, f.batchRepo, f.variantRepo, f.supplierRepo,
	)

	_, err = racing.AddLine(context.Background(), resp.ID, dto.ReceiptLineRequest{
		VariantID: "variant-1", Quantity: 3, UnitCost: decimal.NewFromInt(5_100_000),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	// Ningún lote nuevo colgado de un recibo finished: sería stock fantasma.
	stored, _ := f.batchRepo.ListByReceipt(context.Background(), resp.ID)
	assert.Len(t, stored, 1)
}

// deletedOnLockSupplierRepo simula un borrado de proveedor que gana el
// bloqueo: la fila llega ya marcada como eliminada.
type deletedOnLockSupplierRepo struct {
	*memSupplierRepo
}

func (r *deletedOnLockSupplierRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Supplier, error) {
	if s := r.suppliers[id]; s != nil && !s.IsDeleted() {
		now := time.Now()
		s.DeletedAt = &now
	}
	return r.memSupplierRepo.GetByIDForUpdate(ctx, id)
}

func TestCreateReceiptSupplierDeletedUnderLock(t *testing.T) {
	f := newPurchasingFixture()
	racing := NewReceiptUseCase(
		&memPurchasingTxRunner{
			receiptRepo:  f.receiptRepo,
			batchRepo:    f.batchRepo,
			supplierRepo: &deletedOnLockSupplierRepo{memSupplierRepo: f.supplierRepo},
		},
		f.receiptRepo, f.batchRepo, f.variantRepo, f.supplierRepo,
	)

	_, err := racing.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 5, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.receiptRepo.receipts)
	assert.Empty(t, f.batchRepo.batches)
}

// ─── Encabezado ───────────────────────────────────────────────────────────────

func TestUpdateReceiptInfo(t *testing.T) {
	f := newPurchasingFixture()
	f.supplierRepo.suppliers["supplier-2"] = &entity.Supplier{ID: "supplier-2", Name: "Distribuidora del Sur"}
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1", Reference: "REM-0001",
	})
	require.NoError(t, err)

	ref := "REM-0001-CORREGIDA"
	notes := "llegó incompleta, pendiente segunda entrega"
	supplierID := "supplier-2"
	out, err := f.uc.UpdateInfo(context.Background(), resp.ID, dto.UpdateReceiptRequest{
		SupplierID: &supplierID,
		Reference:  &ref,
		Notes:      &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "supplier-2", out.SupplierID)
	assert.Equal(t, ref, out.Reference)
	assert.Equal(t, notes, out.Notes)
}

func TestUpdateReceiptInfoUnknownSupplierRejected(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{SupplierID: "supplier-1"})
	require.NoError(t, err)

	supplierID := "no-existe"
	_, err = f.uc.UpdateInfo(context.Background(), resp.ID, dto.UpdateReceiptRequest{SupplierID: &supplierID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "supplier-1", f.receiptRepo.receipts[resp.ID].SupplierID)
}

func TestUpdateReceiptInfoAfterFinishRejected(t *testing.T) {
	f := newPurchasingFixture()
	resp, err := f.uc.Create(context.Background(), "bodeguero-1", dto.CreateReceiptRequest{
		SupplierID: "supplier-1",
		Lines: []dto.ReceiptLineRequest{
			{VariantID: "variant-1", Quantity: 2, UnitCost: decimal.NewFromInt(5_000_000)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Finish(context.Background(), resp.ID, "bodeguero-1"))

	ref := "REM-TARDÍA"
	_, err = f.uc.UpdateInfo(context.Background(), resp.ID, dto.UpdateReceiptRequest{Reference: &ref})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}
