package sales

import (
	"context"

	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es el coordinador de la unidad atómica
// transición de estado + asignación FIFO + estampado de costos: cualquier
// fallo revierte todo (sin deducciones parciales ni estados a medias).
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		orderRepo repository.SalesOrderRepository,
		batchRepo repository.BatchRepository,
	) error) error
}

// VoucherGenerator genera el comprobante PDF de una orden de venta.
type VoucherGenerator interface {
	GenerateOrderVoucher(ctx context.Context, order *entity.SalesOrder, variants map[string]*entity.Variant) ([]byte, error)
}
