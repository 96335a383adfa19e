package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/profit"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
	"github.com/jhoicas/mumi-pos-api/internal/infrastructure/cache"
)

const cachePrefix = "reports:"

// UseCase construye los reportes financieros. El desglose de ganancias y el
// resumen financiero comparten el mismo replay de recuperación de costo, así
// que sus cifras de ganancia siempre coinciden.
type UseCase struct {
	reportRepo     repository.ReportRepository
	adjustmentRepo repository.AdjustmentRepository
	cache          cache.ReportCache
	cacheTTL       time.Duration
}

// NewUseCase construye el caso de uso. Con Noop cache cada consulta recalcula.
func NewUseCase(
	reportRepo repository.ReportRepository,
	adjustmentRepo repository.AdjustmentRepository,
	c cache.ReportCache,
	cacheTTL time.Duration,
) *UseCase {
	return &UseCase{reportRepo: reportRepo, adjustmentRepo: adjustmentRepo, cache: c, cacheTTL: cacheTTL}
}

// InvalidateCache borra todos los reportes cacheados. Debe llamarse tras
// cualquier mutación contable: ventas, stock, gastos, inversiones, ajustes.
func (uc *UseCase) InvalidateCache(ctx context.Context) error {
	return uc.cache.DeleteByPrefix(ctx, cachePrefix)
}

func cacheKey(kind string, start, end *time.Time) string {
	s, e := "-", "-"
	if start != nil {
		s = start.Format("2006-01-02")
	}
	if end != nil {
		e = end.Format("2006-01-02")
	}
	return fmt.Sprintf("%s%s:%s:%s", cachePrefix, kind, s, e)
}

// ProfitBreakdown reproduce la historia de ventas de la ventana y descompone
// cada línea en recuperación de costo y ganancia, con totales por venta y por
// perfume. Si la ventana está filtrada, la recuperación se reconstruye solo
// dentro de ella.
func (uc *UseCase) ProfitBreakdown(ctx context.Context, start, end *time.Time) (*dto.ProfitBreakdownResponse, error) {
	key := cacheKey("profit", start, end)
	if payload, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
		var cached dto.ProfitBreakdownResponse
		if json.Unmarshal(payload, &cached) == nil {
			return &cached, nil
		}
	}

	rows, err := uc.reportRepo.ProfitRows(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := profit.Replay(rows)

	out := &dto.ProfitBreakdownResponse{
		Lines:              make([]dto.ProfitLineResponse, 0, len(res.Lines)),
		TotalRevenue:       res.TotalSalesValue,
		TotalCostRecovered: res.TotalCost,
		TotalProfit:        res.TotalProfit,
	}

	saleIdx := make(map[int64]int)
	perfumeIdx := make(map[int64]int)
	for _, line := range res.Lines {
		row := line.Row
		customer := ""
		if row.CustomerName != nil {
			customer = *row.CustomerName
		}
		out.Lines = append(out.Lines, dto.ProfitLineResponse{
			SaleID:          row.SaleID,
			SaleDate:        row.SaleDate,
			CustomerName:    customer,
			BatchID:         row.StockBatchID,
			PerfumeID:       row.PerfumeID,
			PerfumeName:     row.PerfumeName,
			SaleType:        row.SaleType,
			Quantity:        row.Quantity,
			Revenue:         row.Subtotal,
			CostRecovered:   line.CostRecovered,
			Profit:          line.Profit,
			CalculationNote: line.Note,
		})

		if i, ok := saleIdx[row.SaleID]; ok {
			out.BySale[i].Revenue = out.BySale[i].Revenue.Add(row.Subtotal)
			out.BySale[i].CostRecovered = out.BySale[i].CostRecovered.Add(line.CostRecovered)
			out.BySale[i].Profit = out.BySale[i].Profit.Add(line.Profit)
		} else {
			saleIdx[row.SaleID] = len(out.BySale)
			out.BySale = append(out.BySale, dto.ProfitSaleRollup{
				SaleID:        row.SaleID,
				SaleDate:      row.SaleDate,
				CustomerName:  customer,
				Revenue:       row.Subtotal,
				CostRecovered: line.CostRecovered,
				Profit:        line.Profit,
			})
		}

		if i, ok := perfumeIdx[row.PerfumeID]; ok {
			out.ByPerfume[i].Revenue = out.ByPerfume[i].Revenue.Add(row.Subtotal)
			out.ByPerfume[i].CostRecovered = out.ByPerfume[i].CostRecovered.Add(line.CostRecovered)
			out.ByPerfume[i].Profit = out.ByPerfume[i].Profit.Add(line.Profit)
		} else {
			perfumeIdx[row.PerfumeID] = len(out.ByPerfume)
			out.ByPerfume = append(out.ByPerfume, dto.ProfitPerfumeRollup{
				PerfumeID:     row.PerfumeID,
				PerfumeName:   row.PerfumeName,
				Revenue:       row.Subtotal,
				CostRecovered: line.CostRecovered,
				Profit:        line.Profit,
			})
		}
	}

	// Perfumes ordenados por ganancia descendente
	sort.SliceStable(out.ByPerfume, func(i, j int) bool {
		return out.ByPerfume[i].Profit.GreaterThan(out.ByPerfume[j].Profit)
	})

	uc.storeInCache(ctx, key, out)
	return out, nil
}

// FinancialSummary arma el tablero financiero. Las cifras de venta respetan la
// ventana de fechas; los libros de gastos, capital y ajustes son posiciones
// acumuladas.
func (uc *UseCase) FinancialSummary(ctx context.Context, start, end *time.Time) (*dto.FinancialSummaryResponse, error) {
	key := cacheKey("financial", start, end)
	if payload, ok, err := uc.cache.Get(ctx, key); err == nil && ok {
		var cached dto.FinancialSummaryResponse
		if json.Unmarshal(payload, &cached) == nil {
			return &cached, nil
		}
	}

	sums, err := uc.reportRepo.FinancialSums(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.ProfitRows(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := profit.Replay(rows)

	liquidCash := sums.CashReceived.Sub(sums.TotalExpenses).Add(sums.LiquidCashAdjustments)
	totalCapital := sums.ManualInvestments.Add(sums.CapitalAdjustments)
	investedInStock := sums.PerfumeStockCost.Add(sums.CustomStockCost).Add(sums.ShipmentExpenses)
	profitFromSales := res.TotalProfit
	costOfGoodsSold := res.TotalCost

	out := &dto.FinancialSummaryResponse{
		TotalRevenue:          liquidCash,
		TotalSalesAmount:      sums.TotalSalesAmount,
		TotalExpenses:         sums.TotalExpenses,
		TotalCapital:          totalCapital,
		TotalInvestment:       investedInStock,
		AmountInvestedInStock: investedInStock,
		ProfitFromSales:       profitFromSales,
		CostOfGoodsSold:       costOfGoodsSold,
		NetProfit:             profitFromSales.Sub(sums.TotalExpenses),
		GrossProfit:           sums.TotalSalesAmount.Sub(costOfGoodsSold),
		OutstandingDebts:      sums.OutstandingDebts,
		DailyIncome:           sums.DailyIncome,
		MonthlyIncome:         sums.MonthlyIncome,
		TotalReturns:          decimal.Zero,
		NetPosition:           liquidCash.Add(sums.OutstandingDebts),
	}

	uc.storeInCache(ctx, key, out)
	return out, nil
}

// RecordCashAdjustment reconcilia la caja líquida o el capital con un monto
// verificado: persiste solo el delta contra el valor calculado vigente.
func (uc *UseCase) RecordCashAdjustment(ctx context.Context, in dto.RecordAdjustmentRequest) (*entity.CashAdjustment, error) {
	if in.AdjustmentType != entity.AdjustmentLiquidCash && in.AdjustmentType != entity.AdjustmentCapital {
		return nil, domain.ErrInvalidInput
	}
	if in.DesiredAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	sums, err := uc.reportRepo.FinancialSums(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	var current decimal.Decimal
	switch in.AdjustmentType {
	case entity.AdjustmentLiquidCash:
		current = sums.CashReceived.Sub(sums.TotalExpenses).Add(sums.LiquidCashAdjustments)
	case entity.AdjustmentCapital:
		current = sums.ManualInvestments.Add(sums.CapitalAdjustments)
	}

	adj := &entity.CashAdjustment{
		Type:           in.AdjustmentType,
		PreviousAmount: current,
		NewAmount:      in.DesiredAmount,
		Adjustment:     in.DesiredAmount.Sub(current),
		AdjustedAt:     time.Now(),
	}
	if in.Reason != "" {
		reason := in.Reason
		adj.Reason = &reason
	}
	if err := uc.adjustmentRepo.Create(ctx, adj); err != nil {
		return nil, err
	}
	if err := uc.InvalidateCache(ctx); err != nil {
		return nil, err
	}
	return adj, nil
}

// ListAdjustments historial de ajustes, opcionalmente por tipo.
func (uc *UseCase) ListAdjustments(ctx context.Context, adjType *string) ([]*entity.CashAdjustment, error) {
	if adjType != nil && *adjType != entity.AdjustmentLiquidCash && *adjType != entity.AdjustmentCapital {
		return nil, domain.ErrInvalidInput
	}
	return uc.adjustmentRepo.List(ctx, adjType)
}

// storeInCache guarda el reporte serializado; un fallo de caché nunca tumba la
// consulta.
func (uc *UseCase) storeInCache(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = uc.cache.Set(ctx, key, payload, uc.cacheTTL)
}
