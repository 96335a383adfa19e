package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación PostgreSQL de envíos (tabla stock_shipments).
type ShipmentRepo struct {
	q Querier
}

func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_shipments
			(name, transport_cost, other_expenses, total_additional_expenses, purchase_date, funded_from)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		s.Name, s.TransportCost, s.OtherExpenses, s.TotalAdditionalExpenses, s.PurchaseDate, s.FundedFrom,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar envío: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id int64) (*entity.Shipment, error) {
	var s entity.Shipment
	err := r.q.QueryRow(ctx, `
		SELECT id, name, transport_cost, other_expenses, total_additional_expenses,
		       purchase_date, funded_from, created_at
		FROM stock_shipments WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.TransportCost, &s.OtherExpenses, &s.TotalAdditionalExpenses,
		&s.PurchaseDate, &s.FundedFrom, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consultar envío %d: %w", id, err)
	}
	return &s, nil
}

func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE stock_shipments SET
			name = $2, transport_cost = $3, other_expenses = $4,
			total_additional_expenses = $5, purchase_date = $6, funded_from = $7
		WHERE id = $1`,
		s.ID, s.Name, s.TransportCost, s.OtherExpenses, s.TotalAdditionalExpenses, s.PurchaseDate, s.FundedFrom)
	if err != nil {
		return fmt.Errorf("actualizar envío %d: %w", s.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShipmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar envío %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
