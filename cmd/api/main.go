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

	"github.com/jhoicas/mumi-pos-api/internal/application/auth"
	"github.com/jhoicas/mumi-pos-api/internal/application/backup"
	"github.com/jhoicas/mumi-pos-api/internal/application/ledger"
	"github.com/jhoicas/mumi-pos-api/internal/application/perfumes"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/application/sales"
	"github.com/jhoicas/mumi-pos-api/internal/application/stock"
	"github.com/jhoicas/mumi-pos-api/internal/application/supplies"
	"github.com/jhoicas/mumi-pos-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/mumi-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mumi-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mumi-pos-api/internal/interfaces/http"
	"github.com/jhoicas/mumi-pos-api/pkg/config"
	"github.com/jhoicas/mumi-pos-api/pkg/logger"
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

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	// Caché de reportes: Redis si está configurado, si no un no-op.
	var reportCache cache.ReportCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, reportes sin caché")
		} else {
			reportCache = redisCache
			defer redisCache.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("caché de reportes en Redis")
		}
	}

	perfumeRepo := postgres.NewPerfumeRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	debtRepo := postgres.NewDebtPaymentRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	investmentRepo := postgres.NewInvestmentRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	customRepo := postgres.NewCustomInventoryRepository(pool)
	decantRepo := postgres.NewDecantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	backupRepo := postgres.NewBackupRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("asegurar usuario admin")
	}

	perfumeUC := perfumes.NewUseCase(perfumeRepo)
	stockUC := stock.NewUseCase(txRunner, reportRepo, decantRepo)
	salesUC := sales.NewUseCase(txRunner, perfumeRepo, saleRepo, debtRepo)
	ledgerUC := ledger.NewUseCase(expenseRepo, investmentRepo)
	suppliesUC := supplies.NewUseCase(customRepo)
	reportsUC := reports.NewUseCase(reportRepo, adjustmentRepo, reportCache,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	backupUC := backup.NewUseCase(backupRepo, log)
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mumi POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		PerfumeUC:  perfumeUC,
		StockUC:    stockUC,
		SalesUC:    salesUC,
		LedgerUC:   ledgerUC,
		SuppliesUC: suppliesUC,
		ReportsUC:  reportsUC,
		BackupUC:   backupUC,
		Receipts:   receipts,
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
