package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/motostock-api/internal/application/dto"
	"github.com/tu-usuario/motostock-api/internal/domain"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
	"github.com/tu-usuario/motostock-api/internal/domain/repository"
)

// CatalogUseCase casos de uso CRUD para variantes (SKUs) y proveedores,
// incluido el guard de borrado de proveedores.
type CatalogUseCase struct {
	variantRepo  repository.VariantRepository
	supplierRepo repository.SupplierRepository
	txRunner     TxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(variantRepo repository.VariantRepository, supplierRepo repository.SupplierRepository, txRunner TxRunner) *CatalogUseCase {
	return &CatalogUseCase{variantRepo: variantRepo, supplierRepo: supplierRepo, txRunner: txRunner}
}

// ── Variantes ─────────────────────────────────────────────────────────────────

// CreateVariant crea una variante nueva. SKU duplicado devuelve ErrDuplicate.
func (uc *CatalogUseCase) CreateVariant(ctx context.Context, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.variantRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	v := &entity.Variant{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Brand:     in.Brand,
		Model:     in.Model,
		Color:     in.Color,
		EngineCC:  in.EngineCC,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.variantRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVariantResponse(v), nil
}

// GetVariant obtiene una variante por ID (incluye eliminadas, para historial).
func (uc *CatalogUseCase) GetVariant(ctx context.Context, id string) (*dto.VariantResponse, error) {
	v, err := uc.variantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVariantResponse(v), nil
}

// UpdateVariant actualiza campos editables de una variante no eliminada.
func (uc *CatalogUseCase) UpdateVariant(ctx context.Context, id string, in dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	v, err := uc.variantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if v.IsDeleted() {
		return nil, domain.ErrAlreadyFinalized
	}
	if in.Name != nil {
		v.Name = *in.Name
	}
	if in.Brand != nil {
		v.Brand = *in.Brand
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Color != nil {
		v.Color = *in.Color
	}
	if in.EngineCC != nil {
		v.EngineCC = *in.EngineCC
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		v.Price = *in.Price
	}
	v.UpdatedAt = time.Now()
	if err := uc.variantRepo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVariantResponse(v), nil
}

// ListVariants lista variantes activas con paginación.
func (uc *CatalogUseCase) ListVariants(ctx context.Context, limit, offset int) (*dto.VariantListResponse, error) {
	list, err := uc.variantRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VariantResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVariantResponse(v))
	}
	return &dto.VariantListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// DeleteVariant marca la variante como eliminada; queda legible para
// historial pero no acepta lotes ni ventas nuevas.
func (uc *CatalogUseCase) DeleteVariant(ctx context.Context, id string) error {
	v, err := uc.variantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if v.IsDeleted() {
		return domain.ErrNotFound
	}
	return uc.variantRepo.SoftDelete(ctx, id, time.Now())
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplier crea un proveedor.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.supplierRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *CatalogUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// UpdateSupplier actualiza campos editables de un proveedor.
func (uc *CatalogUseCase) UpdateSupplier(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.IsDeleted() {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.TaxID != nil {
		s.TaxID = *in.TaxID
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	s.UpdatedAt = time.Now()
	if err := uc.supplierRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// ListSuppliers lista proveedores activos con paginación.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.supplierRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// DeleteSuppliers borra (soft) uno o varios proveedores en una sola
// transacción, todo-o-nada: si alguno tiene recibos en elaboración, ninguno
// se borra y se devuelve ErrReferentialBlock.
func (uc *CatalogUseCase) DeleteSuppliers(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunCatalog(ctx, func(supplierRepo repository.SupplierRepository) error {
		// Primero se validan todos los guards, luego se borra; cualquier
		// fallo revierte la transacción completa. Cada fila se bloquea antes
		// de consultar sus recibos: la creación de un recibo para el mismo
		// proveedor toma el mismo bloqueo, así que no puede comprometerse
		// entre el guard y el borrado.
		for _, id := range ids {
			s, err := supplierRepo.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if s == nil || s.IsDeleted() {
				return domain.ErrNotFound
			}
			blocked, err := supplierRepo.HasWorkingReceipts(ctx, id)
			if err != nil {
				return err
			}
			if blocked {
				return domain.ErrReferentialBlock
			}
		}
		for _, id := range ids {
			if err := supplierRepo.SoftDelete(ctx, id, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func toVariantResponse(v *entity.Variant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:        v.ID,
		SKU:       v.SKU,
		Name:      v.Name,
		Brand:     v.Brand,
		Model:     v.Model,
		Color:     v.Color,
		EngineCC:  v.EngineCC,
		Price:     v.Price,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		Deleted:   v.IsDeleted(),
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
