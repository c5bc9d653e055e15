package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de orden de venta. El precio unitario es opcional:
// si viene vacío se congela el precio de lista de la variante.
type OrderLineRequest struct {
	VariantID string           `json:"variant_id" validate:"required,uuid"`
	Quantity  int64            `json:"quantity" validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest entrada para crear una orden de venta (queda en pending).
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerPhone string             `json:"customer_phone" validate:"omitempty,max=30"`
	Lines         []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// TransitionOrderRequest entrada del punto de entrada de transición.
type TransitionOrderRequest struct {
	TargetStatus string `json:"target_status" validate:"required"`
}

// OrderLineResponse salida de una línea. UnitCost es null hasta que la
// asignación FIFO la estampa.
type OrderLineResponse struct {
	ID        string           `json:"id"`
	VariantID string           `json:"variant_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// OrderResponse salida de una orden con sus líneas.
type OrderResponse struct {
	ID              string              `json:"id"`
	Code            string              `json:"code"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	Status          string              `json:"status"`
	ConfirmedBy     string              `json:"confirmed_by,omitempty"`
	StatusChangedAt time.Time           `json:"status_changed_at"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Lines           []OrderLineResponse `json:"lines"`
	Total           decimal.Decimal     `json:"total"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
