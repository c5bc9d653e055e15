package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLineRequest línea de recibo: variante, cantidad y costo unitario.
type ReceiptLineRequest struct {
	VariantID string          `json:"variant_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"required"`
}

// CreateReceiptRequest entrada para crear un recibo de compra (en estado
// working, opcionalmente con líneas iniciales).
type CreateReceiptRequest struct {
	SupplierID string               `json:"supplier_id" validate:"required,uuid"`
	Reference  string               `json:"reference" validate:"omitempty,max=100"`
	Notes      string               `json:"notes" validate:"omitempty,max=500"`
	Lines      []ReceiptLineRequest `json:"lines" validate:"omitempty,dive"`
}

// UpdateReceiptRequest campos editables del encabezado (recibo working).
type UpdateReceiptRequest struct {
	SupplierID *string `json:"supplier_id" validate:"omitempty,uuid"`
	Reference  *string `json:"reference" validate:"omitempty,max=100"`
	Notes      *string `json:"notes" validate:"omitempty,max=500"`
}

// UpdateReceiptLineRequest campos actualizables de una línea (recibo working).
type UpdateReceiptLineRequest struct {
	Quantity *int64           `json:"quantity"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// ReceiptLineResponse salida de una línea/lote.
type ReceiptLineResponse struct {
	ID        string          `json:"id"`
	VariantID string          `json:"variant_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Remaining int64           `json:"remaining"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReceiptResponse salida de un recibo con sus líneas.
type ReceiptResponse struct {
	ID         string                `json:"id"`
	SupplierID string                `json:"supplier_id"`
	Reference  string                `json:"reference"`
	Status     string                `json:"status"`
	Notes      string                `json:"notes"`
	CreatedBy  string                `json:"created_by"`
	FinishedBy string                `json:"finished_by,omitempty"`
	FinishedAt *time.Time            `json:"finished_at,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
	Lines      []ReceiptLineResponse `json:"lines"`
}

// ReceiptListResponse listado paginado de recibos.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
