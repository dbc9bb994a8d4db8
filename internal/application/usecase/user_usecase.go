package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength largo mínimo de contraseñas nuevas.
const MinPasswordLength = 8

// UserUseCase aplica reglas de negocio para usuarios (alta, perfil, baja lógica).
type UserUseCase struct {
	repo  repository.UserRepository
	clock clock.Clock
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, clk clock.Clock, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, clock: clk, log: log.Component("users")}
}

// Create da de alta un usuario activo. El email duplicado lo detecta el almacenamiento.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleEmployee
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		name = email
	}

	now := uc.clock.Now()
	user := &entity.User{
		ID:           entity.NewID(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
		Role:         role,
		Department:   strings.TrimSpace(in.Department),
		EmployeeID:   trimmed(in.EmployeeID),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario creado")
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// List página de usuarios, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page = page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}, nil
}

// Update cambia nombre, departamento o rol. Los campos nil no se tocan.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*in.Role))
		if !entity.ValidRole(role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = role
	}
	if in.FullName != nil {
		if name := strings.TrimSpace(*in.FullName); name != "" {
			user.FullName = name
		}
	}
	if in.Department != nil {
		user.Department = strings.TrimSpace(*in.Department)
	}
	user.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario actualizado")
	return entityToUserResponse(user), nil
}

// SetActive baja o reactivación lógica. Las jornadas y solicitudes del usuario se conservan.
func (uc *UserUseCase) SetActive(ctx context.Context, id string, active bool) (*dto.UserResponse, error) {
	user, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Active == active {
		return entityToUserResponse(user), nil
	}
	user.Active = active
	user.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Bool("active", active).Msg("estado de usuario")
	return entityToUserResponse(user), nil
}

func (uc *UserUseCase) find(ctx context.Context, id string) (*entity.User, error) {
	if !entity.ValidID(id) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		Department: u.Department,
		EmployeeID: u.EmployeeID,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
