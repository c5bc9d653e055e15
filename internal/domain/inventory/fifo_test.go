package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: Lote A (10 u a 100.000) + Lote B (5 u a 150.000),
// en ese orden. Vender 12 consume todo A y 2 de B:
//
//	total = 10×100.000 + 2×150.000 = 1.300.000
//	costo unitario = round(1.300.000 / 12) = 108.333
// ──────────────────────────────────────────────────────────────────────────────

func twoBatches() []inventory.BatchView {
	return []inventory.BatchView{
		{ID: "A", Remaining: 10, UnitCost: decimal.NewFromInt(100_000)},
		{ID: "B", Remaining: 5, UnitCost: decimal.NewFromInt(150_000)},
	}
}

func TestAllocate_ConsumeDosLotes(t *testing.T) {
	alloc, err := inventory.Allocate(twoBatches(), 12)
	require.NoError(t, err)

	assert.True(t, alloc.TotalCost.Equal(decimal.NewFromInt(1_300_000)), "costo total = %s", alloc.TotalCost)
	assert.True(t, alloc.UnitCost.Equal(decimal.NewFromInt(108_333)), "costo unitario = %s", alloc.UnitCost)

	require.Len(t, alloc.Deductions, 2)
	assert.Equal(t, "A", alloc.Deductions[0].BatchID)
	assert.EqualValues(t, 10, alloc.Deductions[0].Quantity)
	assert.Equal(t, "B", alloc.Deductions[1].BatchID)
	assert.EqualValues(t, 2, alloc.Deductions[1].Quantity)
}

func TestAllocate_StockInsuficiente(t *testing.T) {
	batches := twoBatches()
	alloc, err := inventory.Allocate(batches, 20) // disponibles: 15

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, alloc)
	// La función es pura: las vistas de entrada quedan intactas.
	assert.EqualValues(t, 10, batches[0].Remaining)
	assert.EqualValues(t, 5, batches[1].Remaining)
}

func TestAllocate_CantidadCero(t *testing.T) {
	alloc, err := inventory.Allocate(twoBatches(), 0)
	require.NoError(t, err)
	assert.True(t, alloc.UnitCost.IsZero())
	assert.True(t, alloc.TotalCost.IsZero())
	assert.Empty(t, alloc.Deductions)
}

func TestAllocate_CantidadNegativa(t *testing.T) {
	_, err := inventory.Allocate(twoBatches(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocate_SaltaLotesAgotados(t *testing.T) {
	batches := []inventory.BatchView{
		{ID: "agotado", Remaining: 0, UnitCost: decimal.NewFromInt(90_000)},
		{ID: "B", Remaining: 5, UnitCost: decimal.NewFromInt(150_000)},
	}
	alloc, err := inventory.Allocate(batches, 3)
	require.NoError(t, err)
	require.Len(t, alloc.Deductions, 1)
	assert.Equal(t, "B", alloc.Deductions[0].BatchID)
	assert.True(t, alloc.UnitCost.Equal(decimal.NewFromInt(150_000)))
}

func TestAllocate_UnSoloLoteExacto(t *testing.T) {
	batches := []inventory.BatchView{
		{ID: "A", Remaining: 10, UnitCost: decimal.NewFromInt(50_000)},
	}
	alloc, err := inventory.Allocate(batches, 10)
	require.NoError(t, err)
	require.Len(t, alloc.Deductions, 1)
	assert.EqualValues(t, 10, alloc.Deductions[0].Quantity)
	assert.True(t, alloc.TotalCost.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, alloc.UnitCost.Equal(decimal.NewFromInt(50_000)))
}

func TestAllocate_SinLotes(t *testing.T) {
	_, err := inventory.Allocate(nil, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// TestAllocate_ConservaCantidad verifica que para varias combinaciones la
// suma de deducciones es exactamente la cantidad pedida y que ningún lote
// se deduce por encima de su remanente.
func TestAllocate_ConservaCantidad(t *testing.T) {
	cases := []struct {
		name string
		qty  int64
	}{
		{"una unidad", 1},
		{"solo el primer lote", 10},
		{"cruza lotes", 11},
		{"todo el stock", 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			batches := twoBatches()
			alloc, err := inventory.Allocate(batches, tc.qty)
			require.NoError(t, err)

			var sum int64
			for _, d := range alloc.Deductions {
				sum += d.Quantity
				for _, b := range batches {
					if b.ID == d.BatchID {
						assert.LessOrEqual(t, d.Quantity, b.Remaining,
							"la deducción del lote %s supera su remanente", b.ID)
					}
				}
			}
			assert.Equal(t, tc.qty, sum)
		})
	}
}

// TestAllocate_RedondeoMitadLejosDeCero fija el modo de redondeo que alimenta
// los reportes de margen: 1.000.001 / 2 = 500.000,5 → 500.001.
func TestAllocate_RedondeoMitadLejosDeCero(t *testing.T) {
	batches := []inventory.BatchView{
		{ID: "A", Remaining: 2, UnitCost: decimal.RequireFromString("500000.5")},
	}
	alloc, err := inventory.Allocate(batches, 2)
	require.NoError(t, err)
	assert.True(t, alloc.UnitCost.Equal(decimal.NewFromInt(500_001)), "costo = %s", alloc.UnitCost)
}
