package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta. Dos flujos de pago más el flujo de
// devolución, con un conjunto terminal compartido.
//
//	contraentrega: pending → confirmed_cod → delivering → completed
//	separado:      pending → waiting_deposit → deposit_paid → delivering → completed
//	devolución:    pending → paid_processing → refunding → refunded
//	cancelación:   pending | waiting_deposit → cancelled
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmedCod   = "confirmed_cod"
	OrderStatusWaitingDeposit = "waiting_deposit"
	OrderStatusDepositPaid    = "deposit_paid"
	OrderStatusDelivering     = "delivering"
	OrderStatusCompleted      = "completed"
	OrderStatusPaidProcessing = "paid_processing"
	OrderStatusRefunding      = "refunding"
	OrderStatusRefunded       = "refunded"
	OrderStatusCancelled      = "cancelled"
)

// orderTransitions es la lista blanca de transiciones. Todo destino que no
// aparezca aquí se rechaza; no hay lista negra. La tabla es inmutable y se
// carga una sola vez al inicio del proceso.
var orderTransitions = map[string][]string{
	OrderStatusPending:        {OrderStatusConfirmedCod, OrderStatusWaitingDeposit, OrderStatusPaidProcessing, OrderStatusCancelled},
	OrderStatusConfirmedCod:   {OrderStatusDelivering},
	OrderStatusWaitingDeposit: {OrderStatusDepositPaid, OrderStatusCancelled},
	OrderStatusDepositPaid:    {OrderStatusDelivering},
	OrderStatusDelivering:     {OrderStatusCompleted},
	OrderStatusPaidProcessing: {OrderStatusRefunding},
	OrderStatusRefunding:      {OrderStatusRefunded},
	// completed, cancelled y refunded son terminales: sin salidas.
}

// stockCommittingStatuses: entrar a uno de estos estados dispara la
// asignación FIFO y consume stock de forma permanente (primer estado pagado
// o confirmado de cada flujo).
var stockCommittingStatuses = map[string]bool{
	OrderStatusConfirmedCod:   true,
	OrderStatusDepositPaid:    true,
	OrderStatusPaidProcessing: true,
}

// IsValidOrderStatus indica si el string corresponde a un estado conocido.
func IsValidOrderStatus(status string) bool {
	if _, ok := orderTransitions[status]; ok {
		return true
	}
	return status == OrderStatusCompleted || status == OrderStatusCancelled || status == OrderStatusRefunded
}

// IsStockCommittingStatus indica si entrar al estado compromete stock.
func IsStockCommittingStatus(status string) bool {
	return stockCommittingStatuses[status]
}

// IsTerminalOrderStatus indica si el estado no admite más transiciones.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled || status == OrderStatusRefunded
}

// OrderLine es una línea de la orden. UnitPrice se congela al crear la línea;
// UnitCost se estampa en el momento de la asignación FIFO (nil antes).
type OrderLine struct {
	ID        string
	OrderID   string
	VariantID string
	Quantity  int64
	UnitPrice decimal.Decimal
	UnitCost  *decimal.Decimal
	CreatedAt time.Time
}

// HasCost indica si la línea ya tiene costo estampado (stock ya asignado).
func (l *OrderLine) HasCost() bool {
	return l.UnitCost != nil
}

// SalesOrder agrupa líneas de venta contra una o más variantes.
type SalesOrder struct {
	ID              string
	Code            string // consecutivo legible, ej. ORD-2026-000123
	CustomerName    string
	CustomerPhone   string
	Status          string
	ConfirmedBy     string // usuario que disparó la transición comprometedora
	StatusChangedAt time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
	Lines           []*OrderLine
}

// CanTransitionTo valida contra la tabla de adyacencia. No contempla el
// reintento idempotente (mismo estado); eso lo resuelve el caso de uso.
func (o *SalesOrder) CanTransitionTo(target string) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllLinesCosted indica si todas las líneas ya tienen costo estampado.
func (o *SalesOrder) AllLinesCosted() bool {
	if len(o.Lines) == 0 {
		return false
	}
	for _, l := range o.Lines {
		if !l.HasCost() {
			return false
		}
	}
	return true
}
