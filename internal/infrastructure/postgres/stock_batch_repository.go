package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación PostgreSQL de lotes de stock.
type StockBatchRepo struct {
	q Querier
}

func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const batchColumns = `id, shipment_id, perfume_id, quantity, buying_cost_per_bottle,
	subtotal_cost, remaining_quantity, created_at`

func scanBatch(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := row.Scan(&b.ID, &b.ShipmentID, &b.PerfumeID, &b.Quantity,
		&b.BuyingCostPerBottle, &b.SubtotalCost, &b.RemainingQuantity, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *StockBatchRepo) Create(ctx context.Context, b *entity.StockBatch) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_batches
			(shipment_id, perfume_id, quantity, buying_cost_per_bottle, subtotal_cost, remaining_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		b.ShipmentID, b.PerfumeID, b.Quantity, b.BuyingCostPerBottle, b.SubtotalCost, b.RemainingQuantity,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar lote: %w", err)
	}
	return nil
}

func (r *StockBatchRepo) GetByID(ctx context.Context, id int64) (*entity.StockBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx,
		`SELECT `+batchColumns+` FROM stock_batches WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consultar lote %d: %w", id, err)
	}
	return b, nil
}

func (r *StockBatchRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockBatch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx,
		`SELECT `+batchColumns+` FROM stock_batches WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("bloquear lote %d: %w", id, err)
	}
	return b, nil
}

func (r *StockBatchRepo) ListByShipment(ctx context.Context, shipmentID int64) ([]*entity.StockBatch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+batchColumns+` FROM stock_batches WHERE shipment_id = $1 ORDER BY id ASC`, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes del envío %d: %w", shipmentID, err)
	}
	defer rows.Close()

	var out []*entity.StockBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear lote: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *StockBatchRepo) Update(ctx context.Context, b *entity.StockBatch) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_batches SET
			perfume_id = $2, quantity = $3, buying_cost_per_bottle = $4,
			subtotal_cost = $5, remaining_quantity = $6
		WHERE id = $1`,
		b.ID, b.PerfumeID, b.Quantity, b.BuyingCostPerBottle, b.SubtotalCost, b.RemainingQuantity)
	if err != nil {
		return fmt.Errorf("actualizar lote %d: %w", b.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockBatchRepo) DecrementRemaining(ctx context.Context, id int64, qty int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_batches SET remaining_quantity = remaining_quantity - $2
		WHERE id = $1 AND remaining_quantity >= $2`, id, qty)
	if err != nil {
		return fmt.Errorf("descontar stock del lote %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *StockBatchRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar lote %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockBatchRepo) SalesCount(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sale_items WHERE stock_batch_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar ventas del lote %d: %w", id, err)
	}
	return n, nil
}

func (r *StockBatchRepo) SalesCountByShipment(ctx context.Context, shipmentID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM sale_items si
		JOIN stock_batches sb ON sb.id = si.stock_batch_id
		WHERE sb.shipment_id = $1`, shipmentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar ventas del envío %d: %w", shipmentID, err)
	}
	return n, nil
}

func (r *StockBatchRepo) SubtotalCostByShipment(ctx context.Context, shipmentID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(subtotal_cost), 0)
		FROM stock_batches WHERE shipment_id = $1`, shipmentID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar costo del envío %d: %w", shipmentID, err)
	}
	return total, nil
}
