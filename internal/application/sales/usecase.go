package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// OrderUseCase casos de uso de órdenes de venta: creación con congelamiento
// de precios, consulta y la máquina de estados con asignación FIFO.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.SalesOrderRepository
	variantRepo repository.VariantRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.SalesOrderRepository, variantRepo repository.VariantRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, variantRepo: variantRepo}
}

// Create crea una orden en pending. Cada línea congela su precio unitario en
// ese momento: el de la petición si viene, o el precio de lista de la
// variante. El costo queda en null hasta la asignación FIFO.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerName == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:              uuid.New().String(),
		Code:            newOrderCode(now),
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		Status:          entity.OrderStatusPending,
		StatusChangedAt: now,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		variant, err := uc.variantRepo.GetByID(ctx, line.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrNotFound
		}
		if variant.IsDeleted() {
			// Variante eliminada: no acepta ventas nuevas.
			return nil, domain.ErrInvalidInput
		}
		price := variant.Price
		if line.UnitPrice != nil {
			if line.UnitPrice.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			price = *line.UnitPrice
		}
		order.Lines = append(order.Lines, &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitPrice: price,
			CreatedAt: now,
		})
	}

	// Encabezado y líneas se insertan en una sola transacción: una orden
	// pending sin todas sus líneas sería transicionable y asignaría de menos.
	err := uc.txRunner.RunSales(ctx, func(
		orderRepo repository.SalesOrderRepository,
		_ repository.BatchRepository,
	) error {
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *OrderUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	if status != "" && !entity.IsValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Delete borra (soft) una orden; solo permitido sin stock comprometido
// (pending o cancelled).
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending && order.Status != entity.OrderStatusCancelled {
		return domain.ErrAlreadyFinalized
	}
	return uc.orderRepo.SoftDelete(ctx, id, time.Now())
}

// newOrderCode genera un consecutivo legible, ej. ORD-20260830-7F2A91C3.
func newOrderCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

func toOrderResponse(o *entity.SalesOrder) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	total := decimal.Zero
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ID:        l.ID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			UnitCost:  l.UnitCost,
		})
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		Code:            o.Code,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		Status:          o.Status,
		ConfirmedBy:     o.ConfirmedBy,
		StatusChangedAt: o.StatusChangedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Lines:           lines,
		Total:           total,
	}
}
