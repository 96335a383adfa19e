package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mumi-pos-api/internal/application/dto"
	"github.com/jhoicas/mumi-pos-api/internal/domain"
	"github.com/jhoicas/mumi-pos-api/internal/domain/entity"
	"github.com/jhoicas/mumi-pos-api/internal/domain/repository"
	"github.com/jhoicas/mumi-pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación y gestión de operadores.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y registra el último acceso.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		// Mismo error para usuario inexistente y password inválido
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// CreateUser da de alta un operador (solo lo invoca un admin). El password se
// hashea con bcrypt antes de persistir.
func (uc *UseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.userRepo.GetByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers operadores registrados.
func (uc *UseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// EnsureAdmin garantiza que exista al menos un usuario; si la tabla está vacía
// crea el admin inicial con las credenciales configuradas.
func (uc *UseCase) EnsureAdmin(ctx context.Context, username, password string) error {
	n, err := uc.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.Create(ctx, &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
	})
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
