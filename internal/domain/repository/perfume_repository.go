package repository

import (
	"context"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// PerfumeRepository puerto del catálogo de perfumes.
type PerfumeRepository interface {
	Create(ctx context.Context, p *entity.Perfume) error
	GetByID(ctx context.Context, id int64) (*entity.Perfume, error)
	List(ctx context.Context) ([]*entity.Perfume, error)
	// Update aplica solo los campos no-nil (COALESCE en la implementación).
	Update(ctx context.Context, id int64, name *string, volumeML, estimatedDecants *int, isOutOfStock *bool) (*entity.Perfume, error)
	Delete(ctx context.Context, id int64) error
	// HasStock indica si algún lote referencia al perfume (bloquea el borrado).
	HasStock(ctx context.Context, id int64) (bool, error)
}
