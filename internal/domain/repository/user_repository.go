package repository

import (
	"context"

	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
)

// UserRepository puerto de usuarios/operadores.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}
