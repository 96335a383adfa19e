package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación PostgreSQL de ventas y sus líneas.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales (customer_name, payment_method, total_amount, amount_paid, debt_amount, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		s.CustomerName, s.PaymentMethod, s.TotalAmount, s.AmountPaid, s.DebtAmount, s.SaleDate,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar venta: %w", err)
	}
	return nil
}

func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sale_items (sale_id, perfume_id, stock_batch_id, sale_type, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		item.SaleID, item.PerfumeID, item.StockBatchID, item.SaleType, item.Quantity, item.UnitPrice, item.Subtotal,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar línea de venta: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx, `
		SELECT id, customer_name, payment_method, total_amount, amount_paid, debt_amount, sale_date, created_at
		FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.CustomerName, &s.PaymentMethod, &s.TotalAmount, &s.AmountPaid, &s.DebtAmount, &s.SaleDate, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consultar venta %d: %w", id, err)
	}
	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Items = items
	return &s, nil
}

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	sql := `
		SELECT id, customer_name, payment_method, total_amount, amount_paid, debt_amount, sale_date, created_at
		FROM sales WHERE 1=1`
	var args []any
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		sql += ` AND sale_date >= $` + strconv.Itoa(len(args))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		sql += ` AND sale_date <= $` + strconv.Itoa(len(args))
	}
	if f.WithDebt {
		sql += ` AND debt_amount > 0`
	}
	sql += ` ORDER BY sale_date DESC, id DESC`

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.PaymentMethod, &s.TotalAmount,
			&s.AmountPaid, &s.DebtAmount, &s.SaleDate, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear venta: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *SaleRepo) ListItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT si.id, si.sale_id, si.perfume_id, si.stock_batch_id, si.sale_type,
		       si.quantity, si.unit_price, si.subtotal, si.created_at, p.name
		FROM sale_items si
		JOIN perfumes p ON p.id = si.perfume_id
		WHERE si.sale_id = $1
		ORDER BY si.id ASC`, saleID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de la venta %d: %w", saleID, err)
	}
	defer rows.Close()

	var out []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.PerfumeID, &it.StockBatchID, &it.SaleType,
			&it.Quantity, &it.UnitPrice, &it.Subtotal, &it.CreatedAt, &it.PerfumeName); err != nil {
			return nil, fmt.Errorf("escanear línea: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *SaleRepo) ApplyDebtPayment(ctx context.Context, saleID int64, amount decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE sales SET
			amount_paid = amount_paid + $2,
			debt_amount = debt_amount - $2
		WHERE id = $1 AND debt_amount >= $2`, saleID, amount)
	if err != nil {
		return fmt.Errorf("aplicar abono a la venta %d: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		// Venta inexistente o abono mayor que la deuda vigente
		return domain.ErrConflict
	}
	return nil
}
