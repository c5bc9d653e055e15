package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/motostock-api/internal/application/auth"
	"github.com/tu-usuario/motostock-api/internal/application/catalog"
	"github.com/tu-usuario/motostock-api/internal/application/purchasing"
	"github.com/tu-usuario/motostock-api/internal/application/reports"
	"github.com/tu-usuario/motostock-api/internal/application/sales"
	"github.com/tu-usuario/motostock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.CatalogUseCase
	ReceiptUC *purchasing.ReceiptUseCase
	OrderUC   *sales.OrderUseCase
	VoucherUC *sales.VoucherUseCase
	ReportUC  *reports.ReportUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sellers := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Variants: lectura para todos los autenticados, escritura para
	// admin/bodeguero.
	variants := protected.Group("/variants")
	variantHandler := NewVariantHandler(deps.CatalogUC)
	variants.Get("/", variantHandler.List)
	variants.Get("/:id", variantHandler.GetByID)
	variants.Post("/", warehouse, variantHandler.Create)
	variants.Put("/:id", warehouse, variantHandler.Update)
	variants.Delete("/:id", warehouse, variantHandler.Delete)

	// Suppliers (admin/bodeguero)
	suppliers := protected.Group("/suppliers", warehouse)
	supplierHandler := NewSupplierHandler(deps.CatalogUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/", supplierHandler.Delete) // multi-delete todo-o-nada

	// Purchase receipts (admin/bodeguero)
	receipts := protected.Group("/receipts", warehouse)
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Put("/:id", receiptHandler.Update)
	receipts.Delete("/:id", receiptHandler.Delete)
	receipts.Post("/:id/lines", receiptHandler.AddLine)
	receipts.Put("/:id/lines/:lineId", receiptHandler.UpdateLine)
	receipts.Delete("/:id/lines/:lineId", receiptHandler.RemoveLine)
	receipts.Post("/:id/finish", receiptHandler.Finish)
	receipts.Post("/:id/cancel", receiptHandler.Cancel)

	// Sales orders (admin/vendedor)
	orders := protected.Group("/orders", sellers)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.VoucherUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/transition", orderHandler.Transition)
	orders.Get("/:id/voucher", orderHandler.Voucher)

	// Reports (cualquier autenticado)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/availability", reportHandler.Availability)
	reportsGroup.Get("/valuation", reportHandler.Valuation)
	reportsGroup.Get("/margins", reportHandler.Margins)
}
