package repository

import (
	"context"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// DecantRepository puerto del tracking de decants, logs de botellas terminadas
// y retiros de inventario. Todas las mutaciones se usan dentro de transacciones.
type DecantRepository interface {
	// GetTracking devuelve el tracking del lote, o nil (sin error) si el lote
	// aún no registra actividad de decantación.
	GetTracking(ctx context.Context, stockBatchID int64) (*entity.DecantTracking, error)
	CreateTracking(ctx context.Context, t *entity.DecantTracking) error
	// AddBottlesSold upsert: crea la fila con bottles_sold=qty o la incrementa.
	AddBottlesSold(ctx context.Context, stockBatchID, perfumeID int64, qty int) error
	// AddDecantsSold upsert: crea la fila con decants_sold=qty o la incrementa.
	AddDecantsSold(ctx context.Context, stockBatchID, perfumeID int64, qty int) error
	SetBottlesDone(ctx context.Context, stockBatchID int64, bottlesDone int) error
	IncrementBottlesDone(ctx context.Context, stockBatchID int64) error
	// SetTrackingPerfume reapunta el tracking tras editar el perfume del lote.
	SetTrackingPerfume(ctx context.Context, stockBatchID, perfumeID int64) error

	CountLogsBySource(ctx context.Context, stockBatchID int64, source string) (int, error)
	// SumDecantsObtained Σ decants_obtained de todos los logs del lote.
	SumDecantsObtained(ctx context.Context, stockBatchID int64) (int, error)
	MaxBottleSequence(ctx context.Context, stockBatchID int64) (int, error)
	CreateLog(ctx context.Context, log *entity.DecantBottleLog) error
	ListLogs(ctx context.Context, stockBatchID int64) ([]*entity.DecantBottleLog, error)

	CreateDeletedBottle(ctx context.Context, db *entity.DeletedBottle) error
	ListDeletedBottles(ctx context.Context) ([]*entity.DeletedBottle, error)

	// DeleteByBatch elimina tracking, logs y retiros del lote (limpieza de envío).
	DeleteByBatch(ctx context.Context, stockBatchID int64) error
}
