package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/application/reports"
)

// ReportHandler maneja los reportes de inventario y ventas (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Availability godoc
// @Summary      Stock vendible por variante
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AvailabilityDTO
// @Router       /api/reports/availability [get]
func (h *ReportHandler) Availability(c *fiber.Ctx) error {
	out, err := h.uc.Availability(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Valuation godoc
// @Summary      Valoración de inventario a costo de lote
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ValuationDTO
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Margins godoc
// @Summary      Margen por línea de orden completada
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.MarginDTO
// @Router       /api/reports/margins [get]
func (h *ReportHandler) Margins(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.Margins(c.Context(), dto.PageRequest{Limit: limit, Offset: offset})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
