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

var _ repository.PerfumeRepository = (*PerfumeRepo)(nil)

// PerfumeRepo implementación PostgreSQL del catálogo de perfumes.
type PerfumeRepo struct {
	q Querier
}

func NewPerfumeRepository(q Querier) *PerfumeRepo {
	return &PerfumeRepo{q: q}
}

func (r *PerfumeRepo) Create(ctx context.Context, p *entity.Perfume) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO perfumes (name, volume_ml, estimated_decants_per_bottle, is_out_of_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		p.Name, p.VolumeML, p.EstimatedDecantsPerBottle, p.IsOutOfStock,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar perfume: %w", err)
	}
	return nil
}

func (r *PerfumeRepo) GetByID(ctx context.Context, id int64) (*entity.Perfume, error) {
	var p entity.Perfume
	err := r.q.QueryRow(ctx, `
		SELECT id, name, volume_ml, estimated_decants_per_bottle, is_out_of_stock, created_at
		FROM perfumes WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.VolumeML, &p.EstimatedDecantsPerBottle, &p.IsOutOfStock, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consultar perfume %d: %w", id, err)
	}
	return &p, nil
}

func (r *PerfumeRepo) List(ctx context.Context) ([]*entity.Perfume, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, volume_ml, estimated_decants_per_bottle, is_out_of_stock, created_at
		FROM perfumes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listar perfumes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Perfume
	for rows.Next() {
		var p entity.Perfume
		if err := rows.Scan(&p.ID, &p.Name, &p.VolumeML, &p.EstimatedDecantsPerBottle, &p.IsOutOfStock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear perfume: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PerfumeRepo) Update(ctx context.Context, id int64, name *string, volumeML, estimatedDecants *int, isOutOfStock *bool) (*entity.Perfume, error) {
	var p entity.Perfume
	err := r.q.QueryRow(ctx, `
		UPDATE perfumes SET
			name                         = COALESCE($2, name),
			volume_ml                    = COALESCE($3, volume_ml),
			estimated_decants_per_bottle = COALESCE($4, estimated_decants_per_bottle),
			is_out_of_stock              = COALESCE($5, is_out_of_stock)
		WHERE id = $1
		RETURNING id, name, volume_ml, estimated_decants_per_bottle, is_out_of_stock, created_at`,
		id, name, volumeML, estimatedDecants, isOutOfStock,
	).Scan(&p.ID, &p.Name, &p.VolumeML, &p.EstimatedDecantsPerBottle, &p.IsOutOfStock, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("actualizar perfume %d: %w", id, err)
	}
	return &p, nil
}

func (r *PerfumeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM perfumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar perfume %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PerfumeRepo) HasStock(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stock_batches WHERE perfume_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("verificar stock del perfume %d: %w", id, err)
	}
	return exists, nil
}
