package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// memVariantRepo catálogo mínimo para congelar precios al crear órdenes.
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

func newCatalogForOrders() *memVariantRepo {
	return &memVariantRepo{variants: map[string]*entity.Variant{
		"variant-1": {
			ID: "variant-1", SKU: "YBR125-NEGRA", Name: "Yamaha YBR 125 Negra",
			Price: decimal.NewFromInt(7_500_000),
		},
	}}
}

func TestCreateOrderFreezesPrices(t *testing.T) {
	orderRepo := newMemOrderRepo()
	batchRepo := &memBatchRepo{}
	uc := NewOrderUseCase(&memSalesTxRunner{orderRepo: orderRepo, batchRepo: batchRepo}, orderRepo, newCatalogForOrders())

	negotiated := decimal.NewFromInt(7_200_000)
	resp, err := uc.Create(context.Background(), "vendedor-1", dto.CreateOrderRequest{
		CustomerName: "Carlos Pérez",
		Lines: []dto.OrderLineRequest{
			{VariantID: "variant-1", Quantity: 1},
			{VariantID: "variant-1", Quantity: 2, UnitPrice: &negotiated},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	require.Len(t, resp.Lines, 2)
	// Sin precio explícito congela el de lista; con precio, el negociado.
	assert.True(t, resp.Lines[0].UnitPrice.Equal(decimal.NewFromInt(7_500_000)))
	assert.True(t, resp.Lines[1].UnitPrice.Equal(negotiated))
	assert.Nil(t, resp.Lines[0].UnitCost)

	stored := orderRepo.orders[resp.ID]
	require.NotNil(t, stored)
	assert.Len(t, stored.Lines, 2)
}

// failingOrderRepo rechaza el insert, como un fallo a media transacción al
// insertar las líneas de la orden.
type failingOrderRepo struct {
	*memOrderRepo
}

func (r *failingOrderRepo) Create(_ context.Context, _ *entity.SalesOrder) error {
	return errors.New("insert order lines: connection reset")
}

func TestCreateOrderFailurePersistsNothing(t *testing.T) {
	orderRepo := newMemOrderRepo()
	batchRepo := &memBatchRepo{}
	runner := &memSalesTxRunner{
		orderRepo:   orderRepo,
		batchRepo:   batchRepo,
		txOrderRepo: &failingOrderRepo{memOrderRepo: orderRepo},
	}
	uc := NewOrderUseCase(runner, orderRepo, newCatalogForOrders())

	_, err := uc.Create(context.Background(), "vendedor-1", dto.CreateOrderRequest{
		CustomerName: "Carlos Pérez",
		Lines: []dto.OrderLineRequest{
			{VariantID: "variant-1", Quantity: 3},
		},
	})
	require.Error(t, err)

	// Nada a medias: sin encabezado no hay orden pending transicionable con
	// líneas perdidas.
	assert.Empty(t, orderRepo.orders)
}

func TestCreateOrderRejectsDeletedVariant(t *testing.T) {
	orderRepo := newMemOrderRepo()
	batchRepo := &memBatchRepo{}
	catalogRepo := newCatalogForOrders()
	deletedAt := time.Now()
	catalogRepo.variants["variant-1"].DeletedAt = &deletedAt
	uc := NewOrderUseCase(&memSalesTxRunner{orderRepo: orderRepo, batchRepo: batchRepo}, orderRepo, catalogRepo)

	_, err := uc.Create(context.Background(), "vendedor-1", dto.CreateOrderRequest{
		CustomerName: "Carlos Pérez",
		Lines: []dto.OrderLineRequest{
			{VariantID: "variant-1", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, orderRepo.orders)
}
