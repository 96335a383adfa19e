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

var _ repository.DecantRepository = (*DecantRepo)(nil)

// DecantRepo implementación PostgreSQL del tracking de decantación.
type DecantRepo struct {
	q Querier
}

func NewDecantRepository(q Querier) *DecantRepo {
	return &DecantRepo{q: q}
}

func (r *DecantRepo) GetTracking(ctx context.Context, stockBatchID int64) (*entity.DecantTracking, error) {
	var t entity.DecantTracking
	err := r.q.QueryRow(ctx, `
		SELECT id, stock_batch_id, perfume_id, decants_sold, bottles_sold, bottles_done, created_at
		FROM decant_tracking WHERE stock_batch_id = $1`, stockBatchID,
	).Scan(&t.ID, &t.StockBatchID, &t.PerfumeID, &t.DecantsSold, &t.BottlesSold, &t.BottlesDone, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // sin actividad de decantación todavía
	}
	if err != nil {
		return nil, fmt.Errorf("consultar tracking del lote %d: %w", stockBatchID, err)
	}
	return &t, nil
}

func (r *DecantRepo) CreateTracking(ctx context.Context, t *entity.DecantTracking) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO decant_tracking (stock_batch_id, perfume_id, decants_sold, bottles_sold, bottles_done)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		t.StockBatchID, t.PerfumeID, t.DecantsSold, t.BottlesSold, t.BottlesDone,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar tracking: %w", err)
	}
	return nil
}

func (r *DecantRepo) AddBottlesSold(ctx context.Context, stockBatchID, perfumeID int64, qty int) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO decant_tracking (stock_batch_id, perfume_id, bottles_sold)
		VALUES ($1, $2, $3)
		ON CONFLICT (stock_batch_id)
		DO UPDATE SET bottles_sold = decant_tracking.bottles_sold + EXCLUDED.bottles_sold`,
		stockBatchID, perfumeID, qty)
	if err != nil {
		return fmt.Errorf("acumular botellas vendidas del lote %d: %w", stockBatchID, err)
	}
	return nil
}

func (r *DecantRepo) AddDecantsSold(ctx context.Context, stockBatchID, perfumeID int64, qty int) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO decant_tracking (stock_batch_id, perfume_id, decants_sold)
		VALUES ($1, $2, $3)
		ON CONFLICT (stock_batch_id)
		DO UPDATE SET decants_sold = decant_tracking.decants_sold + EXCLUDED.decants_sold`,
		stockBatchID, perfumeID, qty)
	if err != nil {
		return fmt.Errorf("acumular decants vendidos del lote %d: %w", stockBatchID, err)
	}
	return nil
}

func (r *DecantRepo) SetBottlesDone(ctx context.Context, stockBatchID int64, bottlesDone int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE decant_tracking SET bottles_done = $2 WHERE stock_batch_id = $1`,
		stockBatchID, bottlesDone)
	if err != nil {
		return fmt.Errorf("fijar botellas terminadas del lote %d: %w", stockBatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DecantRepo) IncrementBottlesDone(ctx context.Context, stockBatchID int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE decant_tracking SET bottles_done = bottles_done + 1 WHERE stock_batch_id = $1`,
		stockBatchID)
	if err != nil {
		return fmt.Errorf("incrementar botellas terminadas del lote %d: %w", stockBatchID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DecantRepo) SetTrackingPerfume(ctx context.Context, stockBatchID, perfumeID int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE decant_tracking SET perfume_id = $2 WHERE stock_batch_id = $1`,
		stockBatchID, perfumeID)
	if err != nil {
		return fmt.Errorf("reapuntar tracking del lote %d: %w", stockBatchID, err)
	}
	return nil
}

func (r *DecantRepo) CountLogsBySource(ctx context.Context, stockBatchID int64, source string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM decant_bottle_logs
		WHERE stock_batch_id = $1 AND completion_source = $2`, stockBatchID, source).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("contar logs del lote %d: %w", stockBatchID, err)
	}
	return n, nil
}

func (r *DecantRepo) SumDecantsObtained(ctx context.Context, stockBatchID int64) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(decants_obtained), 0) FROM decant_bottle_logs
		WHERE stock_batch_id = $1`, stockBatchID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sumar decants obtenidos del lote %d: %w", stockBatchID, err)
	}
	return total, nil
}

func (r *DecantRepo) MaxBottleSequence(ctx context.Context, stockBatchID int64) (int, error) {
	var max int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(bottle_sequence), 0) FROM decant_bottle_logs
		WHERE stock_batch_id = $1`, stockBatchID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("máxima secuencia del lote %d: %w", stockBatchID, err)
	}
	return max, nil
}

func (r *DecantRepo) CreateLog(ctx context.Context, log *entity.DecantBottleLog) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO decant_bottle_logs
			(stock_batch_id, perfume_id, bottle_sequence, decants_obtained, completion_source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, completed_at`,
		log.StockBatchID, log.PerfumeID, log.BottleSequence, log.DecantsObtained, log.CompletionSource,
	).Scan(&log.ID, &log.CompletedAt)
	if err != nil {
		return fmt.Errorf("insertar log de botella: %w", err)
	}
	return nil
}

func (r *DecantRepo) ListLogs(ctx context.Context, stockBatchID int64) ([]*entity.DecantBottleLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, stock_batch_id, perfume_id, bottle_sequence, decants_obtained, completion_source, completed_at
		FROM decant_bottle_logs
		WHERE stock_batch_id = $1
		ORDER BY bottle_sequence ASC`, stockBatchID)
	if err != nil {
		return nil, fmt.Errorf("listar logs del lote %d: %w", stockBatchID, err)
	}
	defer rows.Close()

	var out []*entity.DecantBottleLog
	for rows.Next() {
		var l entity.DecantBottleLog
		if err := rows.Scan(&l.ID, &l.StockBatchID, &l.PerfumeID, &l.BottleSequence,
			&l.DecantsObtained, &l.CompletionSource, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("escanear log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *DecantRepo) CreateDeletedBottle(ctx context.Context, db *entity.DeletedBottle) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO deleted_bottles (stock_batch_id, perfume_id, quantity_removed, reason, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, removed_at`,
		db.StockBatchID, db.PerfumeID, db.QuantityRemoved, db.Reason, db.Note,
	).Scan(&db.ID, &db.RemovedAt)
	if err != nil {
		return fmt.Errorf("registrar retiro de botellas: %w", err)
	}
	return nil
}

func (r *DecantRepo) ListDeletedBottles(ctx context.Context) ([]*entity.DeletedBottle, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, stock_batch_id, perfume_id, quantity_removed, reason, note, removed_at
		FROM deleted_bottles ORDER BY removed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listar retiros: %w", err)
	}
	defer rows.Close()

	var out []*entity.DeletedBottle
	for rows.Next() {
		var d entity.DeletedBottle
		if err := rows.Scan(&d.ID, &d.StockBatchID, &d.PerfumeID, &d.QuantityRemoved,
			&d.Reason, &d.Note, &d.RemovedAt); err != nil {
			return nil, fmt.Errorf("escanear retiro: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DecantRepo) DeleteByBatch(ctx context.Context, stockBatchID int64) error {
	for _, table := range []string{"decant_bottle_logs", "deleted_bottles", "decant_tracking"} {
		_, err := r.q.Exec(ctx,
			`DELETE FROM `+table+` WHERE stock_batch_id = $1`, stockBatchID)
		if err != nil {
			return fmt.Errorf("limpiar %s del lote %d: %w", table, stockBatchID, err)
		}
	}
	return nil
}
