package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/pkg/jwt"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase casos de uso de autenticación: login, logout y perfil propio.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions repository.SessionRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. sessions puede ser nil: en ese caso los
// tokens son autocontenidos y Logout no revoca nada.
func NewAuthUseCase(userRepo repository.UserRepository, sessions repository.SessionRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("password incorrecto")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	sid := entity.NewID()
	token, exp, err := jwt.Generate(jwt.Params{
		Secret:     uc.jwtCfg.Secret,
		Issuer:     uc.jwtCfg.Issuer,
		TTL:        uc.jwtCfg.TTL,
		SessionID:  sid,
		UserID:     user.ID,
		Role:       user.Role,
		Department: user.Department,
	})
	if err != nil {
		return nil, err
	}
	if uc.sessions != nil {
		if err := uc.sessions.Store(ctx, sid, user.ID, uc.jwtCfg.TTL); err != nil {
			uc.log.Error().Err(err).Str("user_id", user.ID).Msg("guardar sesión")
			return nil, err
		}
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *toUserResponse(user),
	}, nil
}

// Logout revoca la sesión del token. Sin almacén de sesiones es un no-op.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if uc.sessions == nil || sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}

// SessionActive lo usa el middleware para rechazar tokens de sesiones cerradas.
func (uc *AuthUseCase) SessionActive(ctx context.Context, sessionID string) (bool, error) {
	if uc.sessions == nil {
		return true, nil
	}
	if sessionID == "" {
		return false, nil
	}
	return uc.sessions.Exists(ctx, sessionID)
}

// Authorize valida un token ya firmado contra el estado actual: la sesión debe seguir
// abierta y el usuario existir y estar activo. Devuelve el rol vigente en la base, así una
// baja o un cambio de rol surten efecto sin esperar a que el token expire.
func (uc *AuthUseCase) Authorize(ctx context.Context, sessionID, userID string) (string, error) {
	active, err := uc.SessionActive(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !active || !entity.ValidID(userID) {
		return "", domain.ErrSessionExpired
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrSessionExpired
	}
	if !user.IsActive() {
		return "", domain.ErrAccountInactive
	}
	return user.Role, nil
}

// Me perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	if !entity.ValidID(userID) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
