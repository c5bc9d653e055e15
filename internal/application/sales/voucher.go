package sales

import (
	"context"

	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// VoucherUseCase genera el comprobante PDF de una orden de venta.
type VoucherUseCase struct {
	orderRepo   repository.SalesOrderRepository
	variantRepo repository.VariantRepository
	generator   VoucherGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(orderRepo repository.SalesOrderRepository, variantRepo repository.VariantRepository, generator VoucherGenerator) *VoucherUseCase {
	return &VoucherUseCase{orderRepo: orderRepo, variantRepo: variantRepo, generator: generator}
}

// Generate arma el PDF del comprobante: orden + variantes de sus líneas
// (incluidas las eliminadas, el comprobante es histórico).
func (uc *VoucherUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	variants := make(map[string]*entity.Variant, len(order.Lines))
	for _, line := range order.Lines {
		if _, ok := variants[line.VariantID]; ok {
			continue
		}
		v, err := uc.variantRepo.GetByID(ctx, line.VariantID)
		if err != nil {
			return nil, err
		}
		if v != nil {
			variants[line.VariantID] = v
		}
	}
	return uc.generator.GenerateOrderVoucher(ctx, order, variants)
}
