package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/mumi-pos-api/internal/application/sales"
	"github.com/jhoicas/mumi-pos-api/internal/application/stock"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var (
	_ sales.TxRunner = (*TxRunner)(nil)
	_ stock.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSale inicia una transacción con los repos que una venta necesita y hace
// Commit o Rollback.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	batchRepo repository.StockBatchRepository,
	decantRepo repository.DecantRepository,
	customRepo repository.CustomInventoryRepository,
	debtRepo repository.DebtPaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewSaleRepository(tx),
		NewStockBatchRepository(tx),
		NewDecantRepository(tx),
		NewCustomInventoryRepository(tx),
		NewDebtPaymentRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con los repos de envíos y su inversión espejo.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	shipmentRepo repository.ShipmentRepository,
	batchRepo repository.StockBatchRepository,
	decantRepo repository.DecantRepository,
	customRepo repository.CustomInventoryRepository,
	investmentRepo repository.InvestmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewShipmentRepository(tx),
		NewStockBatchRepository(tx),
		NewDecantRepository(tx),
		NewCustomInventoryRepository(tx),
		NewInvestmentRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
