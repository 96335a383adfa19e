package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mumi-pos-api/internal/application/auth"
	"github.com/jhoicas/mumi-pos-api/internal/application/backup"
	"github.com/jhoicas/mumi-pos-api/internal/application/ledger"
	"github.com/jhoicas/mumi-pos-api/internal/application/perfumes"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/application/sales"
	"github.com/jhoicas/mumi-pos-api/internal/application/stock"
	"github.com/jhoicas/mumi-pos-api/internal/application/supplies"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	PerfumeUC  *perfumes.UseCase
	StockUC    *stock.UseCase
	SalesUC    *sales.UseCase
	LedgerUC   *ledger.UseCase
	SuppliesUC *supplies.UseCase
	ReportsUC  *reports.UseCase
	BackupUC   *backup.UseCase
	Receipts   ReceiptGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)

	// Usuarios (solo admin)
	users := protected.Group("/users", RequireAdmin())
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)

	// Perfumes
	perfumeHandler := NewPerfumeHandler(deps.PerfumeUC)
	perfumesGroup := protected.Group("/perfumes")
	perfumesGroup.Post("/", perfumeHandler.Create)
	perfumesGroup.Get("/", perfumeHandler.List)
	perfumesGroup.Get("/:id", perfumeHandler.GetByID)
	perfumesGroup.Put("/:id", perfumeHandler.Update)
	perfumesGroup.Delete("/:id", perfumeHandler.Delete)

	// Stock: envíos, lotes y botellas
	stockHandler := NewStockHandler(deps.StockUC, deps.ReportsUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/", stockHandler.CreateShipment)
	stockGroup.Get("/", stockHandler.ListStock)
	stockGroup.Post("/mark-bottle-done", stockHandler.MarkBottleDone)
	stockGroup.Post("/mark-out-of-stock", stockHandler.MarkOutOfStock)
	stockGroup.Get("/deleted-bottles", stockHandler.ListDeletedBottles)
	stockGroup.Get("/batches/:id/bottle-logs", stockHandler.ListBottleLogs)
	stockGroup.Delete("/batches/:id", stockHandler.DeleteBatch)
	stockGroup.Put("/:id", stockHandler.UpdateShipment)
	stockGroup.Delete("/:id", stockHandler.DeleteShipment)

	// Ventas, abonos y recibos
	saleHandler := NewSaleHandler(deps.SalesUC, deps.ReportsUC, deps.Receipts)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Record)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Post("/:id/debt-payments", saleHandler.RecordDebtPayment)
	salesGroup.Get("/:id/debt-payments", saleHandler.ListDebtPayments)

	// Libros: gastos e inversiones
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.ReportsUC)
	protected.Post("/expenses", ledgerHandler.CreateExpense)
	protected.Get("/expenses", ledgerHandler.ListExpenses)
	protected.Delete("/expenses/:id", ledgerHandler.DeleteExpense)
	protected.Post("/investments", ledgerHandler.CreateInvestment)
	protected.Get("/investments", ledgerHandler.ListInvestments)

	// Inventario auxiliar de consumibles
	suppliesHandler := NewSuppliesHandler(deps.SuppliesUC, deps.ReportsUC)
	customGroup := protected.Group("/custom-inventory")
	customGroup.Get("/categories", suppliesHandler.ListCategories)
	customGroup.Post("/categories", suppliesHandler.CreateCategory)
	customGroup.Get("/items", suppliesHandler.ListItems)
	customGroup.Post("/items", suppliesHandler.CreateItem)
	customGroup.Get("/stock", suppliesHandler.ListStockEntries)
	customGroup.Post("/stock", suppliesHandler.CreateStockEntry)
	customGroup.Delete("/stock/:id", suppliesHandler.DeleteStockEntry)

	// Reportes y dashboard
	reportHandler := NewReportHandler(deps.ReportsUC)
	protected.Get("/reports/profit-breakdown", reportHandler.ProfitBreakdown)
	protected.Get("/dashboard/financial", reportHandler.FinancialSummary)
	protected.Post("/dashboard/adjustments", reportHandler.RecordAdjustment)
	protected.Get("/dashboard/adjustments", reportHandler.ListAdjustments)

	// Respaldo y restauración (solo admin)
	backupHandler := NewBackupHandler(deps.BackupUC, deps.ReportsUC)
	database := protected.Group("/database", RequireAdmin())
	database.Get("/export", backupHandler.Export)
	database.Post("/import", backupHandler.Import)
}
