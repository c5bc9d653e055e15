package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/application/purchasing"
)

// ReceiptHandler maneja las peticiones HTTP para recibos de compra (protegido).
type ReceiptHandler struct {
	uc *purchasing.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *purchasing.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Create godoc
// @Summary      Crear recibo de compra (estado working)
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceiptRequest  true  "Recibo con líneas opcionales"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id es requerido"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener recibo con sus líneas
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar recibos
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado (working|finished|cancelled)"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ReceiptListResponse
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar encabezado de un recibo en elaboración
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del recibo"
// @Param        body  body  dto.UpdateReceiptRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ReceiptResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [put]
func (h *ReceiptHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateInfo(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea a un recibo en elaboración
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del recibo"
// @Param        body  body  dto.ReceiptLineRequest  true  "Línea nueva"
// @Success      201   {object}  dto.ReceiptLineResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/lines [post]
func (h *ReceiptHandler) AddLine(c *fiber.Ctx) error {
	var in dto.ReceiptLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddLine(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLine godoc
// @Summary      Editar línea de un recibo en elaboración
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID del recibo"
// @Param        lineId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateReceiptLineRequest  true  "Campos a actualizar"
// @Success      200     {object}  dto.ReceiptLineResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/lines/{lineId} [put]
func (h *ReceiptHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateReceiptLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateLine(c.Context(), c.Params("id"), c.Params("lineId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine godoc
// @Summary      Eliminar línea de un recibo en elaboración
// @Tags         receipts
// @Security     Bearer
// @Param        id      path  string  true  "ID del recibo"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/lines/{lineId} [delete]
func (h *ReceiptHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.uc.RemoveLine(c.Context(), c.Params("id"), c.Params("lineId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Finish godoc
// @Summary      Finalizar recibo (working → finished)
// @Description  Congela el recibo y pone sus lotes a disposición del motor FIFO.
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/finish [post]
func (h *ReceiptHandler) Finish(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Finish(c.Context(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar recibo (working → cancelled)
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del recibo"
// @Success      200  {object}  dto.ReceiptResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/cancel [post]
func (h *ReceiptHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Cancel(c.Context(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar recibo en elaboración (soft delete)
// @Tags         receipts
// @Security     Bearer
// @Param        id  path  string  true  "ID del recibo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
