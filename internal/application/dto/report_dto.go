package dto

import "github.com/shopspring/decimal"

// AvailabilityDTO stock vendible por variante.
type AvailabilityDTO struct {
	VariantID string `json:"variant_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Available int64  `json:"available"`
}

// ValuationDTO valoración de inventario por variante.
type ValuationDTO struct {
	VariantID string          `json:"variant_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Units     int64           `json:"units"`
	Value     decimal.Decimal `json:"value"`
}

// MarginDTO margen de una línea vendida (precio congelado vs costo FIFO).
type MarginDTO struct {
	OrderID   string          `json:"order_id"`
	OrderCode string          `json:"order_code"`
	VariantID string          `json:"variant_id"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Margin    decimal.Decimal `json:"margin"`
}
