package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/comercio-core/internal/application/billing"
	"github.com/jhoicas/comercio-core/internal/application/inventory"
	"github.com/jhoicas/comercio-core/internal/infrastructure/audit"
	"github.com/jhoicas/comercio-core/internal/infrastructure/postgres"
	"github.com/jhoicas/comercio-core/internal/infrastructure/provider"
	httpRouter "github.com/jhoicas/comercio-core/internal/interfaces/http"
	"github.com/jhoicas/comercio-core/pkg/config"
	"github.com/jhoicas/comercio-core/pkg/logger"
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

	txRunner := postgres.NewTxRunner(pool)
	itemRepo := postgres.NewItemRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	seqRepo := postgres.NewInvoiceSequenceRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	transferRepo := postgres.NewStockTransferRepository(pool)

	ledger := inventory.NewStockLedger(txRunner, levelRepo, log)
	processor := inventory.NewOrderStockProcessor(ledger, orderRepo, itemRepo, log)

	sequences := billing.NewSequenceAllocator(txRunner, seqRepo)
	providerClient := provider.NewClient(cfg.Provider)
	activityLog := audit.NewActivityLogger(pool, log)
	issuer := billing.NewInvoiceIssuer(
		orderRepo, storeRepo, companyRepo, transferRepo, invoiceRepo,
		sequences, providerClient, activityLog, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledger,
		Processor: processor,
		Issuer:    issuer,
		Sequences: sequences,
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

	log.Info().Msg("apagando servidor")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
}
