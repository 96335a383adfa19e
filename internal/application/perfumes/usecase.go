package perfumes

import (
	"context"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
)

// UseCase CRUD del catálogo de perfumes.
type UseCase struct {
	perfumeRepo repository.PerfumeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(perfumeRepo repository.PerfumeRepository) *UseCase {
	return &UseCase{perfumeRepo: perfumeRepo}
}

// Create da de alta un perfume. Sin rendimiento declarado aplica el default.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePerfumeRequest) (*entity.Perfume, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	est := entity.DefaultDecantsPerBottle
	if in.EstimatedDecantsPerBottle != nil {
		if *in.EstimatedDecantsPerBottle <= 0 {
			return nil, domain.ErrInvalidInput
		}
		est = *in.EstimatedDecantsPerBottle
	}
	p := &entity.Perfume{
		Name:                      in.Name,
		VolumeML:                  in.VolumeML,
		EstimatedDecantsPerBottle: est,
	}
	if err := uc.perfumeRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get devuelve un perfume por id.
func (uc *UseCase) Get(ctx context.Context, id int64) (*entity.Perfume, error) {
	return uc.perfumeRepo.GetByID(ctx, id)
}

// List catálogo completo.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Perfume, error) {
	return uc.perfumeRepo.List(ctx)
}

// Update aplica solo los campos presentes.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdatePerfumeRequest) (*entity.Perfume, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.EstimatedDecantsPerBottle != nil && *in.EstimatedDecantsPerBottle <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.perfumeRepo.Update(ctx, id, in.Name, in.VolumeML, in.EstimatedDecantsPerBottle, in.IsOutOfStock)
}

// Delete elimina un perfume sin lotes asociados.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	has, err := uc.perfumeRepo.HasStock(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return domain.ErrConflict
	}
	return uc.perfumeRepo.Delete(ctx, id)
}
