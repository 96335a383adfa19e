package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var _ repository.DebtPaymentRepository = (*DebtPaymentRepo)(nil)

// DebtPaymentRepo implementación PostgreSQL de abonos a deudas.
type DebtPaymentRepo struct {
	q Querier
}

func NewDebtPaymentRepository(q Querier) *DebtPaymentRepo {
	return &DebtPaymentRepo{q: q}
}

func (r *DebtPaymentRepo) Create(ctx context.Context, p *entity.DebtPayment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO debt_payments (sale_id, amount_paid, payment_date, payment_method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		p.SaleID, p.AmountPaid, p.PaymentDate, p.PaymentMethod,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar abono: %w", err)
	}
	return nil
}

func (r *DebtPaymentRepo) ListBySale(ctx context.Context, saleID int64) ([]*entity.DebtPayment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, amount_paid, payment_date, payment_method, created_at
		FROM debt_payments WHERE sale_id = $1
		ORDER BY payment_date ASC, id ASC`, saleID)
	if err != nil {
		return nil, fmt.Errorf("listar abonos de la venta %d: %w", saleID, err)
	}
	defer rows.Close()

	var out []*entity.DebtPayment
	for rows.Next() {
		var p entity.DebtPayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.AmountPaid, &p.PaymentDate, &p.PaymentMethod, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear abono: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
