package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/motostock-api/internal/application/auth"
	"github.com/tu-usuario/motostock-api/internal/application/catalog"
	"github.com/tu-usuario/motostock-api/internal/application/purchasing"
	"github.com/tu-usuario/motostock-api/internal/application/reports"
	"github.com/tu-usuario/motostock-api/internal/application/sales"
	infrapdf "github.com/tu-usuario/motostock-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/motostock-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/motostock-api/internal/interfaces/http"
	"github.com/tu-usuario/motostock-api/pkg/config"
	"github.com/tu-usuario/motostock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	receiptRepo := postgres.NewPurchaseReceiptRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	orderRepo := postgres.NewSalesOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogUC := catalog.NewCatalogUseCase(variantRepo, supplierRepo, txRunner)
	receiptUC := purchasing.NewReceiptUseCase(txRunner, receiptRepo, batchRepo, variantRepo, supplierRepo)
	orderUC := sales.NewOrderUseCase(txRunner, orderRepo, variantRepo)
	reportUC := reports.NewReportUseCase(reportRepo)

	// PDF: comprobante de orden de venta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	voucherUC := sales.NewVoucherUseCase(orderRepo, variantRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MotoStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		CatalogUC: catalogUC,
		ReceiptUC: receiptUC,
		OrderUC:   orderUC,
		VoucherUC: voucherUC,
		ReportUC:  reportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
