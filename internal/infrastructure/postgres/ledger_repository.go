package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var (
	_ repository.ExpenseRepository    = (*ExpenseRepo)(nil)
	_ repository.InvestmentRepository = (*InvestmentRepo)(nil)
	_ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)
)

// ExpenseRepo implementación PostgreSQL del libro de gastos.
type ExpenseRepo struct {
	q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO expenses (description, amount, category, expense_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		e.Description, e.Amount, e.Category, e.ExpenseDate,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar gasto: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) List(ctx context.Context, start, end *time.Time) ([]*entity.Expense, error) {
	sql := `SELECT id, description, amount, category, expense_date, created_at FROM expenses WHERE 1=1`
	var args []any
	if start != nil {
		args = append(args, *start)
		sql += ` AND expense_date >= $` + strconv.Itoa(len(args))
	}
	if end != nil {
		args = append(args, *end)
		sql += ` AND expense_date <= $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY expense_date DESC, id DESC`

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listar gastos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.ExpenseDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear gasto: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *ExpenseRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar gasto %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InvestmentRepo implementación PostgreSQL del libro de inversiones.
type InvestmentRepo struct {
	q Querier
}

func NewInvestmentRepository(q Querier) *InvestmentRepo {
	return &InvestmentRepo{q: q}
}

const investmentColumns = `id, description, amount, investment_date, origin, source_shipment_id, created_at`

func scanInvestment(row pgx.Row) (*entity.Investment, error) {
	var inv entity.Investment
	err := row.Scan(&inv.ID, &inv.Description, &inv.Amount, &inv.InvestmentDate,
		&inv.Origin, &inv.SourceShipmentID, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepo) Create(ctx context.Context, inv *entity.Investment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO investments (description, amount, investment_date, origin, source_shipment_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		inv.Description, inv.Amount, inv.InvestmentDate, inv.Origin, inv.SourceShipmentID,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar inversión: %w", err)
	}
	return nil
}

func (r *InvestmentRepo) Update(ctx context.Context, inv *entity.Investment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE investments SET
			description = $2, amount = $3, investment_date = $4,
			origin = $5, source_shipment_id = $6
		WHERE id = $1`,
		inv.ID, inv.Description, inv.Amount, inv.InvestmentDate, inv.Origin, inv.SourceShipmentID)
	if err != nil {
		return fmt.Errorf("actualizar inversión %d: %w", inv.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvestmentRepo) List(ctx context.Context, includeAuto bool) ([]*entity.Investment, error) {
	sql := `SELECT ` + investmentColumns + ` FROM investments`
	if !includeAuto {
		sql += ` WHERE origin = 'manual'`
	}
	sql += ` ORDER BY investment_date DESC, id DESC`

	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("listar inversiones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("escanear inversión: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *InvestmentRepo) GetByShipment(ctx context.Context, shipmentID int64) (*entity.Investment, error) {
	inv, err := scanInvestment(r.q.QueryRow(ctx, `
		SELECT `+investmentColumns+` FROM investments
		WHERE source_shipment_id = $1 AND origin = $2`,
		shipmentID, entity.InvestmentOriginShipmentCapital))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // el envío no tiene inversión espejo
	}
	if err != nil {
		return nil, fmt.Errorf("consultar inversión del envío %d: %w", shipmentID, err)
	}
	return inv, nil
}

func (r *InvestmentRepo) DeleteByShipment(ctx context.Context, shipmentID int64) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM investments
		WHERE source_shipment_id = $1 AND origin = $2`,
		shipmentID, entity.InvestmentOriginShipmentCapital)
	if err != nil {
		return fmt.Errorf("eliminar inversión del envío %d: %w", shipmentID, err)
	}
	return nil
}

func (r *InvestmentRepo) FindLegacyManualByDescription(ctx context.Context, description string) (*entity.Investment, error) {
	inv, err := scanInvestment(r.q.QueryRow(ctx, `
		SELECT `+investmentColumns+` FROM investments
		WHERE origin = 'manual' AND description = $1
		ORDER BY id ASC LIMIT 1`, description))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar inversión legada: %w", err)
	}
	return inv, nil
}

// AdjustmentRepo implementación PostgreSQL de ajustes de caja/capital.
type AdjustmentRepo struct {
	q Querier
}

func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.CashAdjustment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO cash_adjustments (adjustment_type, previous_amount, new_amount, adjustment, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, adjusted_at`,
		a.Type, a.PreviousAmount, a.NewAmount, a.Adjustment, a.Reason,
	).Scan(&a.ID, &a.AdjustedAt)
	if err != nil {
		return fmt.Errorf("insertar ajuste: %w", err)
	}
	return nil
}

func (r *AdjustmentRepo) List(ctx context.Context, adjType *string) ([]*entity.CashAdjustment, error) {
	sql := `SELECT id, adjustment_type, previous_amount, new_amount, adjustment, reason, adjusted_at
		FROM cash_adjustments`
	var args []any
	if adjType != nil {
		args = append(args, *adjType)
		sql += ` WHERE adjustment_type = $1`
	}
	sql += ` ORDER BY adjusted_at DESC, id DESC`

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listar ajustes: %w", err)
	}
	defer rows.Close()

	var out []*entity.CashAdjustment
	for rows.Next() {
		var a entity.CashAdjustment
		if err := rows.Scan(&a.ID, &a.Type, &a.PreviousAmount, &a.NewAmount, &a.Adjustment, &a.Reason, &a.AdjustedAt); err != nil {
			return nil, fmt.Errorf("escanear ajuste: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *AdjustmentRepo) SumAdjustments(ctx context.Context, adjType string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(adjustment), 0) FROM cash_adjustments
		WHERE adjustment_type = $1`, adjType).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar ajustes %s: %w", adjType, err)
	}
	return total, nil
}
