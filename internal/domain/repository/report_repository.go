package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain/profit"
)

// FinancialSums agregados escalares sobre los libros, base del resumen
// financiero. Las columnas de venta respetan el rango de fechas; los libros de
// gastos, inversiones y ajustes son acumulados históricos (igual que el origen
// de los datos: la caja es una posición, no un flujo del período).
type FinancialSums struct {
	TotalSalesAmount      decimal.Decimal // Σ total_amount
	CashReceived          decimal.Decimal // Σ amount_paid
	DailyIncome           decimal.Decimal // Σ amount_paid de hoy
	MonthlyIncome         decimal.Decimal // Σ amount_paid del mes en curso
	TotalExpenses         decimal.Decimal
	ManualInvestments     decimal.Decimal // solo origin = manual
	OutstandingDebts      decimal.Decimal // Σ debt_amount > 0
	PerfumeStockCost      decimal.Decimal // Σ stock_batches.subtotal_cost
	CustomStockCost       decimal.Decimal // Σ quantity_added × unit_cost
	ShipmentExpenses      decimal.Decimal // Σ total_additional_expenses
	LiquidCashAdjustments decimal.Decimal // Σ adjustment (type=liquid_cash)
	CapitalAdjustments    decimal.Decimal // Σ adjustment (type=capital)
}

// StockOverviewRow fila del listado de stock con detalle de perfume, envío,
// contadores de decantación y suma de decants de botellas ya terminadas.
type StockOverviewRow struct {
	BatchID                int64
	ShipmentID             int64
	PerfumeID              int64
	PerfumeName            string
	Quantity               int
	BuyingCostPerBottle    decimal.Decimal
	SubtotalCost           decimal.Decimal
	RemainingQuantity      int
	PurchaseDate           time.Time
	ShipmentName           *string
	TransportCost          decimal.Decimal
	OtherExpenses          decimal.Decimal
	FundedFrom             string
	DecantsSold            int
	BottlesSold            int
	BottlesDone            int
	CompletedBottleDecants int
}

// ReportRepository consultas de solo lectura para reportes. No muta el libro.
type ReportRepository interface {
	// ProfitRows líneas de venta unidas a venta y lote, ordenadas por
	// (sale_date ASC, sale_id ASC, item_id ASC) para el replay cronológico.
	ProfitRows(ctx context.Context, start, end *time.Time) ([]profit.LineRow, error)
	FinancialSums(ctx context.Context, start, end *time.Time) (*FinancialSums, error)
	StockOverview(ctx context.Context, perfumeID *int64) ([]*StockOverviewRow, error)
}
