package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/mumi-pos-api/internal/domain/profit"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes contables y de stock.
type ReportRepo struct {
	q Querier
}

func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) ProfitRows(ctx context.Context, start, end *time.Time) ([]profit.LineRow, error) {
	// El orden (fecha, venta, línea) es el orden del replay: no cambiarlo.
	sql := `
		SELECT s.id, s.sale_date, s.customer_name, s.total_amount,
		       si.id, si.stock_batch_id, si.perfume_id, p.name,
		       si.sale_type, si.quantity, si.unit_price, si.subtotal,
		       sb.subtotal_cost
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN stock_batches sb ON sb.id = si.stock_batch_id
		JOIN perfumes p ON p.id = si.perfume_id
		WHERE 1=1`
	var args []any
	if start != nil {
		args = append(args, *start)
		sql += ` AND s.sale_date >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		sql += ` AND s.sale_date <= $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY s.sale_date ASC, s.id ASC, si.id ASC`

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("consultar líneas de ganancia: %w", err)
	}
	defer rows.Close()

	var out []profit.LineRow
	for rows.Next() {
		var lr profit.LineRow
		if err := rows.Scan(&lr.SaleID, &lr.SaleDate, &lr.CustomerName, &lr.SaleTotal,
			&lr.ItemID, &lr.StockBatchID, &lr.PerfumeID, &lr.PerfumeName,
			&lr.SaleType, &lr.Quantity, &lr.UnitPrice, &lr.Subtotal,
			&lr.BatchCost); err != nil {
			return nil, fmt.Errorf("escanear línea de ganancia: %w", err)
		}
		out = append(out, lr)
	}
	return out, rows.Err()
}

func (r *ReportRepo) FinancialSums(ctx context.Context, start, end *time.Time) (*repository.FinancialSums, error) {
	var sums repository.FinancialSums

	// Agregados de venta: respetan la ventana de fechas.
	saleSQL := `
		SELECT COALESCE(SUM(total_amount), 0),
		       COALESCE(SUM(amount_paid), 0),
		       COALESCE(SUM(amount_paid) FILTER (WHERE sale_date = CURRENT_DATE), 0),
		       COALESCE(SUM(amount_paid) FILTER (WHERE date_trunc('month', sale_date) = date_trunc('month', CURRENT_DATE)), 0),
		       COALESCE(SUM(debt_amount) FILTER (WHERE debt_amount > 0), 0)
		FROM sales WHERE 1=1`
	var args []any
	if start != nil {
		args = append(args, *start)
		saleSQL += ` AND sale_date >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		saleSQL += ` AND sale_date <= $` + strconv.Itoa(len(args))
	}
	err := r.q.QueryRow(ctx, saleSQL, args...).Scan(
		&sums.TotalSalesAmount, &sums.CashReceived, &sums.DailyIncome,
		&sums.MonthlyIncome, &sums.OutstandingDebts)
	if err != nil {
		return nil, fmt.Errorf("agregados de ventas: %w", err)
	}

	// Los libros son posiciones acumuladas, sin filtro de fecha.
	err = r.q.QueryRow(ctx, `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM expenses),
			(SELECT COALESCE(SUM(amount), 0) FROM investments WHERE origin = 'manual'),
			(SELECT COALESCE(SUM(subtotal_cost), 0) FROM stock_batches),
			(SELECT COALESCE(SUM(quantity_added * unit_cost), 0) FROM custom_inventory_stock_entries),
			(SELECT COALESCE(SUM(total_additional_expenses), 0) FROM stock_shipments),
			(SELECT COALESCE(SUM(adjustment), 0) FROM cash_adjustments WHERE adjustment_type = 'liquid_cash'),
			(SELECT COALESCE(SUM(adjustment), 0) FROM cash_adjustments WHERE adjustment_type = 'capital')`,
	).Scan(&sums.TotalExpenses, &sums.ManualInvestments, &sums.PerfumeStockCost,
		&sums.CustomStockCost, &sums.ShipmentExpenses, &sums.LiquidCashAdjustments,
		&sums.CapitalAdjustments)
	if err != nil {
		return nil, fmt.Errorf("agregados de libros: %w", err)
	}
	return &sums, nil
}

func (r *ReportRepo) StockOverview(ctx context.Context, perfumeID *int64) ([]*repository.StockOverviewRow, error) {
	sql := `
		SELECT sb.id, sb.shipment_id, sb.perfume_id, p.name,
		       sb.quantity, sb.buying_cost_per_bottle, sb.subtotal_cost, sb.remaining_quantity,
		       sh.purchase_date, sh.name, sh.transport_cost, sh.other_expenses, sh.funded_from,
		       COALESCE(dt.decants_sold, 0), COALESCE(dt.bottles_sold, 0), COALESCE(dt.bottles_done, 0),
		       COALESCE(bl.total_decants, 0)
		FROM stock_batches sb
		JOIN perfumes p ON p.id = sb.perfume_id
		JOIN stock_shipments sh ON sh.id = sb.shipment_id
		LEFT JOIN decant_tracking dt ON dt.stock_batch_id = sb.id
		LEFT JOIN (
			SELECT stock_batch_id, SUM(decants_obtained) AS total_decants
			FROM decant_bottle_logs GROUP BY stock_batch_id
		) bl ON bl.stock_batch_id = sb.id`
	var args []any
	if perfumeID != nil {
		args = append(args, *perfumeID)
		sql += ` WHERE sb.perfume_id = $1`
	}
	sql += ` ORDER BY sh.purchase_date DESC, sb.id DESC`

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("consultar stock: %w", err)
	}
	defer rows.Close()

	var out []*repository.StockOverviewRow
	for rows.Next() {
		var row repository.StockOverviewRow
		if err := rows.Scan(&row.BatchID, &row.ShipmentID, &row.PerfumeID, &row.PerfumeName,
			&row.Quantity, &row.BuyingCostPerBottle, &row.SubtotalCost, &row.RemainingQuantity,
			&row.PurchaseDate, &row.ShipmentName, &row.TransportCost, &row.OtherExpenses, &row.FundedFrom,
			&row.DecantsSold, &row.BottlesSold, &row.BottlesDone,
			&row.CompletedBottleDecants); err != nil {
			return nil, fmt.Errorf("escanear fila de stock: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}
