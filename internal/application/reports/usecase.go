package reports

import (
	"context"

	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// ReportUseCase expone los reportes de inventario y ventas. Son consultas de
// solo lectura, fuera de cualquier transacción.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// Availability stock vendible por variante.
func (uc *ReportUseCase) Availability(ctx context.Context) ([]*dto.AvailabilityDTO, error) {
	rows, err := uc.reportRepo.Availability(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AvailabilityDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.AvailabilityDTO{
			VariantID: r.VariantID,
			SKU:       r.SKU,
			Name:      r.Name,
			Available: r.Available,
		})
	}
	return out, nil
}

// Valuation valoración del inventario a costo de lote.
func (uc *ReportUseCase) Valuation(ctx context.Context) ([]*dto.ValuationDTO, error) {
	rows, err := uc.reportRepo.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ValuationDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.ValuationDTO{
			VariantID: r.VariantID,
			SKU:       r.SKU,
			Name:      r.Name,
			Units:     r.Units,
			Value:     r.Value,
		})
	}
	return out, nil
}

// Margins margen por línea de órdenes completadas, paginado.
func (uc *ReportUseCase) Margins(ctx context.Context, page dto.PageRequest) ([]*dto.MarginDTO, error) {
	page.DefaultPage()
	rows, err := uc.reportRepo.Margins(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MarginDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, &dto.MarginDTO{
			OrderID:   r.OrderID,
			OrderCode: r.OrderCode,
			VariantID: r.VariantID,
			SKU:       r.SKU,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
			UnitCost:  r.UnitCost,
			Margin:    r.Margin,
		})
	}
	return out, nil
}
