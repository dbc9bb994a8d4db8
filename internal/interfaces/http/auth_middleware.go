package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/pkg/jwt"
)

// Locals keys para la identidad del llamante en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalSessionID = "session_id"
)

// SessionChecker confirma que la sesión del token sigue vigente y que su usuario sigue activo.
// Devuelve el rol actual del usuario, que prevalece sobre el claim del token.
// Lo implementa *auth.AuthUseCase.
type SessionChecker interface {
	Authorize(ctx context.Context, sessionID, userID string) (role string, err error)
}

// AuthMiddleware valida el Bearer Token JWT y deja UserID, Role y SessionID en c.Locals.
// sessions puede ser nil: entonces se confía en el rol del token.
func AuthMiddleware(jwtSecret string, sessions SessionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		role := claims.Role
		if sessions != nil {
			current, err := sessions.Authorize(c.UserContext(), claims.SessionID(), claims.UserID)
			if err != nil {
				var de *domain.Error
				if errors.As(err, &de) {
					return c.Status(statusFor(de.Kind)).JSON(dto.ErrorResponse{Code: de.Code, Message: de.Message})
				}
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
			}
			role = current
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, role)
		c.Locals(LocalSessionID, claims.SessionID())
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetRole devuelve el rol vigente del llamante.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// GetSessionID devuelve el ID de sesión (jti) del token.
func GetSessionID(c *fiber.Ctx) string {
	return localString(c, LocalSessionID)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
