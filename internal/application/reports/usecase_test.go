package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/application/reports"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/profit"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
	"github.com/jhoicas/mumi-pos-api/internal/infrastructure/cache"
)

// fakeReportRepo entrega filas y sumas enlatadas.
type fakeReportRepo struct {
	rows []profit.LineRow
	sums repository.FinancialSums
}

func (r *fakeReportRepo) ProfitRows(_ context.Context, _, _ *time.Time) ([]profit.LineRow, error) {
	return r.rows, nil
}

func (r *fakeReportRepo) FinancialSums(_ context.Context, _, _ *time.Time) (*repository.FinancialSums, error) {
	sums := r.sums
	return &sums, nil
}

func (r *fakeReportRepo) StockOverview(_ context.Context, _ *int64) ([]*repository.StockOverviewRow, error) {
	return nil, nil
}

type fakeAdjustmentRepo struct {
	created []*entity.CashAdjustment
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, a *entity.CashAdjustment) error {
	a.ID = int64(len(r.created) + 1)
	r.created = append(r.created, a)
	return nil
}

func (r *fakeAdjustmentRepo) List(_ context.Context, adjType *string) ([]*entity.CashAdjustment, error) {
	var out []*entity.CashAdjustment
	for _, a := range r.created {
		if adjType == nil || a.Type == *adjType {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAdjustmentRepo) SumAdjustments(_ context.Context, adjType string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, a := range r.created {
		if a.Type == adjType {
			sum = sum.Add(a.Adjustment)
		}
	}
	return sum, nil
}

func day(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

func row(saleID, itemID, batchID int64, perfume string, qty int, price, batchCost int64, date time.Time) profit.LineRow {
	unit := decimal.NewFromInt(price)
	return profit.LineRow{
		SaleID:       saleID,
		SaleDate:     date,
		ItemID:       itemID,
		StockBatchID: batchID,
		PerfumeID:    batchID, // 1:1 en estos escenarios
		PerfumeName:  perfume,
		SaleType:     entity.SaleTypeDecant,
		Quantity:     qty,
		UnitPrice:    unit,
		Subtotal:     unit.Mul(decimal.NewFromInt(int64(qty))),
		BatchCost:    decimal.NewFromInt(batchCost),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// TestProfitBreakdown_Rollups: el desglose agrega por venta y por perfume, y
// el orden por perfume es ganancia descendente.
// ──────────────────────────────────────────────────────────────────────────────

func TestProfitBreakdown_Rollups(t *testing.T) {
	repo := &fakeReportRepo{rows: []profit.LineRow{
		// Lote 1 (costo 500): primera venta recupera todo, deja 100 de ganancia
		row(1, 1, 1, "Aventus", 1, 600, 500, day(1)),
		// Lote 2 (costo 1000): recupera 300, ganancia 0
		row(1, 2, 2, "Delina", 1, 300, 1_000, day(1)),
		// Lote 1 ya recuperado: todo es ganancia
		row(2, 3, 1, "Aventus", 1, 200, 500, day(2)),
	}}
	uc := reports.NewUseCase(repo, &fakeAdjustmentRepo{}, cache.Noop{}, 0)

	out, err := uc.ProfitBreakdown(context.Background(), nil, nil)
	require.NoError(t, err)

	require.Len(t, out.Lines, 3)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(1_100)))
	assert.True(t, out.TotalCostRecovered.Equal(decimal.NewFromInt(800)))
	assert.True(t, out.TotalProfit.Equal(decimal.NewFromInt(300)))

	require.Len(t, out.BySale, 2)
	assert.Equal(t, int64(1), out.BySale[0].SaleID)
	assert.True(t, out.BySale[0].Revenue.Equal(decimal.NewFromInt(900)))
	assert.True(t, out.BySale[0].Profit.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.BySale[1].Profit.Equal(decimal.NewFromInt(200)))

	// Aventus (300) antes que Delina (0)
	require.Len(t, out.ByPerfume, 2)
	assert.Equal(t, "Aventus", out.ByPerfume[0].PerfumeName)
	assert.True(t, out.ByPerfume[0].Profit.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "Delina", out.ByPerfume[1].PerfumeName)
	assert.True(t, out.ByPerfume[1].Profit.Equal(decimal.Zero))
}

// TestFinancialSummary_Formulas valida las fórmulas del tablero contra sumas
// enlatadas y el mismo replay del desglose.
func TestFinancialSummary_Formulas(t *testing.T) {
	repo := &fakeReportRepo{
		rows: []profit.LineRow{
			row(1, 1, 1, "Aventus", 1, 600, 500, day(1)),
		},
		sums: repository.FinancialSums{
			TotalSalesAmount:      decimal.NewFromInt(600),
			CashReceived:          decimal.NewFromInt(550),
			DailyIncome:           decimal.NewFromInt(100),
			MonthlyIncome:         decimal.NewFromInt(550),
			TotalExpenses:         decimal.NewFromInt(50),
			ManualInvestments:     decimal.NewFromInt(2_000),
			OutstandingDebts:      decimal.NewFromInt(50),
			PerfumeStockCost:      decimal.NewFromInt(500),
			CustomStockCost:       decimal.NewFromInt(100),
			ShipmentExpenses:      decimal.NewFromInt(30),
			LiquidCashAdjustments: decimal.NewFromInt(25),
			CapitalAdjustments:    decimal.NewFromInt(-100),
		},
	}
	uc := reports.NewUseCase(repo, &fakeAdjustmentRepo{}, cache.Noop{}, 0)

	out, err := uc.FinancialSummary(context.Background(), nil, nil)
	require.NoError(t, err)

	// caja líquida = 550 − 50 + 25
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(525)))
	// capital = 2000 − 100
	assert.True(t, out.TotalCapital.Equal(decimal.NewFromInt(1_900)))
	// invertido en stock = 500 + 100 + 30
	assert.True(t, out.AmountInvestedInStock.Equal(decimal.NewFromInt(630)))
	assert.True(t, out.TotalInvestment.Equal(out.AmountInvestedInStock))
	// replay: ingreso 600 sobre costo 500 → ganancia 100, COGS 500
	assert.True(t, out.ProfitFromSales.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.CostOfGoodsSold.Equal(decimal.NewFromInt(500)))
	assert.True(t, out.NetProfit.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.GrossProfit.Equal(decimal.NewFromInt(100)))
	assert.True(t, out.NetPosition.Equal(decimal.NewFromInt(575)))
	assert.True(t, out.TotalReturns.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// TestRecordCashAdjustment_GuardaDelta: el operador ingresa el monto deseado y
// se persiste solo la diferencia contra el calculado vigente.
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordCashAdjustment_GuardaDelta(t *testing.T) {
	repo := &fakeReportRepo{
		sums: repository.FinancialSums{
			CashReceived:          decimal.NewFromInt(800_000),
			TotalExpenses:         decimal.NewFromInt(50_000),
			LiquidCashAdjustments: decimal.Zero,
		},
	}
	adjRepo := &fakeAdjustmentRepo{}
	uc := reports.NewUseCase(repo, adjRepo, cache.Noop{}, 0)

	// calculado: 800,000 − 50,000 = 750,000; deseado: 1,000,000
	adj, err := uc.RecordCashAdjustment(context.Background(), dto.RecordAdjustmentRequest{
		AdjustmentType: entity.AdjustmentLiquidCash,
		DesiredAmount:  decimal.NewFromInt(1_000_000),
	})
	require.NoError(t, err)
	assert.True(t, adj.PreviousAmount.Equal(decimal.NewFromInt(750_000)))
	assert.True(t, adj.NewAmount.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, adj.Adjustment.Equal(decimal.NewFromInt(250_000)))
	require.Len(t, adjRepo.created, 1)
}

func TestRecordCashAdjustment_Capital(t *testing.T) {
	repo := &fakeReportRepo{
		sums: repository.FinancialSums{
			ManualInvestments:  decimal.NewFromInt(2_000_000),
			CapitalAdjustments: decimal.NewFromInt(-500_000),
		},
	}
	uc := reports.NewUseCase(repo, &fakeAdjustmentRepo{}, cache.Noop{}, 0)

	adj, err := uc.RecordCashAdjustment(context.Background(), dto.RecordAdjustmentRequest{
		AdjustmentType: entity.AdjustmentCapital,
		DesiredAmount:  decimal.NewFromInt(1_200_000),
	})
	require.NoError(t, err)
	assert.True(t, adj.PreviousAmount.Equal(decimal.NewFromInt(1_500_000)))
	assert.True(t, adj.Adjustment.Equal(decimal.NewFromInt(-300_000)))
}

func TestRecordCashAdjustment_TipoInvalido(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportRepo{}, &fakeAdjustmentRepo{}, cache.Noop{}, 0)
	_, err := uc.RecordCashAdjustment(context.Background(), dto.RecordAdjustmentRequest{
		AdjustmentType: "otro",
		DesiredAmount:  decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordCashAdjustment_MontoNegativo(t *testing.T) {
	uc := reports.NewUseCase(&fakeReportRepo{}, &fakeAdjustmentRepo{}, cache.Noop{}, 0)
	_, err := uc.RecordCashAdjustment(context.Background(), dto.RecordAdjustmentRequest{
		AdjustmentType: entity.AdjustmentLiquidCash,
		DesiredAmount:  decimal.NewFromInt(-100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
