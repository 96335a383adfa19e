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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación PostgreSQL de usuarios.
type UserRepo struct {
	q Querier
}

func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		u.Username, u.PasswordHash, u.FullName, u.Role, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `
		SELECT id, username, password_hash, full_name, role, is_active, created_at, last_login
		FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consultar usuario %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `
		SELECT id, username, password_hash, full_name, role, is_active, created_at, last_login
		FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt, &u.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consultar usuario %q: %w", username, err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, username, password_hash, full_name, role, is_active, created_at, last_login
		FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role,
			&u.IsActive, &u.CreatedAt, &u.LastLogin); err != nil {
			return nil, fmt.Errorf("escanear usuario: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("contar usuarios: %w", err)
	}
	return n, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("actualizar last_login del usuario %d: %w", id, err)
	}
	return nil
}
