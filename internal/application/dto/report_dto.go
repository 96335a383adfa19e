package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfitLineResponse una línea de venta con su descomposición costo/ganancia.
type ProfitLineResponse struct {
	SaleID          int64           `json:"sale_id"`
	SaleDate        time.Time       `json:"sale_date"`
	CustomerName    string          `json:"customer_name,omitempty"`
	BatchID         int64           `json:"batch_id"`
	PerfumeID       int64           `json:"perfume_id"`
	PerfumeName     string          `json:"perfume_name"`
	SaleType        string          `json:"sale_type"`
	Quantity        int             `json:"quantity"`
	Revenue         decimal.Decimal `json:"revenue"`
	CostRecovered   decimal.Decimal `json:"cost_recovered"`
	Profit          decimal.Decimal `json:"profit"`
	CalculationNote string          `json:"calculation_note"`
}

// ProfitSaleRollup totales por venta.
type ProfitSaleRollup struct {
	SaleID        int64           `json:"sale_id"`
	SaleDate      time.Time       `json:"sale_date"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Revenue       decimal.Decimal `json:"revenue"`
	CostRecovered decimal.Decimal `json:"cost_recovered"`
	Profit        decimal.Decimal `json:"profit"`
}

// ProfitPerfumeRollup totales por perfume, ordenados por ganancia descendente.
type ProfitPerfumeRollup struct {
	PerfumeID     int64           `json:"perfume_id"`
	PerfumeName   string          `json:"perfume_name"`
	Revenue       decimal.Decimal `json:"revenue"`
	CostRecovered decimal.Decimal `json:"cost_recovered"`
	Profit        decimal.Decimal `json:"profit"`
}

// ProfitBreakdownResponse respuesta de GET /api/reports/profit-breakdown.
type ProfitBreakdownResponse struct {
	Lines              []ProfitLineResponse  `json:"lines"`
	BySale             []ProfitSaleRollup    `json:"by_sale"`
	ByPerfume          []ProfitPerfumeRollup `json:"by_perfume"`
	TotalRevenue       decimal.Decimal       `json:"total_revenue"`
	TotalCostRecovered decimal.Decimal       `json:"total_cost_recovered"`
	TotalProfit        decimal.Decimal       `json:"total_profit"`
}

// FinancialSummaryResponse respuesta de GET /api/dashboard/financial.
type FinancialSummaryResponse struct {
	TotalRevenue          decimal.Decimal `json:"total_revenue"` // caja líquida
	TotalSalesAmount      decimal.Decimal `json:"total_sales_amount"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	TotalCapital          decimal.Decimal `json:"total_capital"`
	TotalInvestment       decimal.Decimal `json:"total_investment"`
	AmountInvestedInStock decimal.Decimal `json:"amount_invested_in_stock"`
	ProfitFromSales       decimal.Decimal `json:"profit_from_sales"`
	CostOfGoodsSold       decimal.Decimal `json:"cost_of_goods_sold"`
	NetProfit             decimal.Decimal `json:"net_profit"`
	GrossProfit           decimal.Decimal `json:"gross_profit"`
	OutstandingDebts      decimal.Decimal `json:"outstanding_debts"`
	DailyIncome           decimal.Decimal `json:"daily_income"`
	MonthlyIncome         decimal.Decimal `json:"monthly_income"`
	TotalReturns          decimal.Decimal `json:"total_returns"`
	NetPosition           decimal.Decimal `json:"net_position"`
}

// RecordAdjustmentRequest body para POST /api/dashboard/adjustments. El monto
// llega como el valor deseado; el servidor almacena el delta contra el valor
// calculado actual.
type RecordAdjustmentRequest struct {
	AdjustmentType string          `json:"adjustment_type"` // liquid_cash | capital
	DesiredAmount  decimal.Decimal `json:"desired_amount"`
	Reason         string          `json:"reason,omitempty"`
}

// AdjustmentResponse un ajuste manual registrado.
type AdjustmentResponse struct {
	ID             int64           `json:"id"`
	AdjustmentType string          `json:"adjustment_type"`
	Adjustment     decimal.Decimal `json:"adjustment"`
	PreviousAmount decimal.Decimal `json:"previous_amount"`
	NewAmount      decimal.Decimal `json:"new_amount"`
	Reason         string          `json:"reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
