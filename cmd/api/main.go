package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpabloc/gestion-comercial/internal/application/auth"
	"github.com/jpabloc/gestion-comercial/internal/application/credits"
	"github.com/jpabloc/gestion-comercial/internal/application/purchases"
	"github.com/jpabloc/gestion-comercial/internal/application/sales"
	"github.com/jpabloc/gestion-comercial/internal/application/transfers"
	"github.com/jpabloc/gestion-comercial/internal/application/units"
	"github.com/jpabloc/gestion-comercial/internal/application/usecase"
	"github.com/jpabloc/gestion-comercial/internal/infrastructure/postgres"
	"github.com/jpabloc/gestion-comercial/internal/infrastructure/rediscache"
	httpRouter "github.com/jpabloc/gestion-comercial/internal/interfaces/http"
	"github.com/jpabloc/gestion-comercial/pkg/config"
	"github.com/jpabloc/gestion-comercial/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	accountRepo := postgres.NewCreditAccountRepository(pool)
	paymentRepo := postgres.NewCreditPaymentRepository(pool)
	cashRepo := postgres.NewCashMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	conversionRepo := postgres.NewUnitConversionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de factores de conversión: Redis si está configurado, noop si no.
	var cache units.ConversionCache = units.NoopConversionCache{}
	if cfg.Redis.Addr != "" {
		redisCache := rediscache.NewConversionCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, cache de conversiones desactivado")
		} else {
			cache = redisCache
			defer redisCache.Close()
		}
	}
	resolver := units.NewResolver(conversionRepo, cache)

	branchUC := usecase.NewBranchUseCase(branchRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	stockUC := usecase.NewStockUseCase(stockRepo)
	cashUC := usecase.NewCashUseCase(cashRepo)

	saleUC := sales.NewSaleUseCase(txRunner, resolver, productRepo, customerRepo, saleRepo, log)
	purchaseUC := purchases.NewPurchaseUseCase(txRunner, resolver, productRepo, supplierRepo, purchaseRepo, log)
	creditUC := credits.NewCreditUseCase(txRunner, accountRepo, paymentRepo)
	transferUC := transfers.NewTransferUseCase(txRunner, branchRepo, productRepo, transferRepo)

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BranchUC:   branchUC,
		ProductUC:  productUC,
		CustomerUC: customerUC,
		SupplierUC: supplierUC,
		StockUC:    stockUC,
		CashUC:     cashUC,
		Resolver:   resolver,
		SaleUC:     saleUC,
		PurchaseUC: purchaseUC,
		CreditUC:   creditUC,
		TransferUC: transferUC,
		JWTSecret:  cfg.JWT.Secret,
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
