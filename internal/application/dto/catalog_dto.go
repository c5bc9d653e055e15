package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVariantRequest entrada para crear una variante (SKU).
type CreateVariantRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=50"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Brand    string          `json:"brand" validate:"required,max=100"`
	Model    string          `json:"model" validate:"required,max=100"`
	Color    string          `json:"color" validate:"omitempty,max=50"`
	EngineCC int             `json:"engine_cc" validate:"omitempty,min=0"`
	Price    decimal.Decimal `json:"price" validate:"required"`
}

// UpdateVariantRequest campos actualizables de una variante (parcial).
// El SKU es identidad y no se modifica.
type UpdateVariantRequest struct {
	Name     *string          `json:"name"`
	Brand    *string          `json:"brand"`
	Model    *string          `json:"model"`
	Color    *string          `json:"color"`
	EngineCC *int             `json:"engine_cc"`
	Price    *decimal.Decimal `json:"price"`
}

// VariantResponse salida de una variante.
type VariantResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Color     string          `json:"color"`
	EngineCC  int             `json:"engine_cc"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Deleted   bool            `json:"deleted,omitempty"`
}

// VariantListResponse listado paginado de variantes.
type VariantListResponse struct {
	Items []VariantResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" validate:"omitempty,max=20"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=300"`
}

// UpdateSupplierRequest campos actualizables de un proveedor (parcial).
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	TaxID   *string `json:"tax_id"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse listado paginado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// DeleteSuppliersRequest borrado múltiple: todo-o-nada, si algún proveedor
// tiene recibos en elaboración no se borra ninguno.
type DeleteSuppliersRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}
