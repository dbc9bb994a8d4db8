package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/domain"
	apphttp "github.com/jhoicas/Asistencia-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Asistencia-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testSessionID = "00000000-0000-0000-0000-0000000000aa"
	testIssuer    = "asistencia-api-test"
)

// fakeSessions devuelve siempre el mismo rol vigente o error.
type fakeSessions struct {
	role string
	err  error
}

func (f fakeSessions) Authorize(context.Context, string, string) (string, error) { return f.role, f.err }

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(sessions apphttp.SessionChecker, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, sessions),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"user_id":    apphttp.GetUserID(c),
				"role":       apphttp.GetRole(c),
				"session_id": apphttp.GetSessionID(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT con el rol y TTL indicados.
func tokenFor(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(pkgjwt.Params{
		Secret: testJWTSecret, Issuer: testIssuer, TTL: ttl,
		SessionID: testSessionID, UserID: testUserID, Role: role,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario tiene el rol requerido → HTTP 200 con los claims en locals.
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(nil, "admin")
	resp := doRequest(t, app, tokenFor(t, "admin", time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testSessionID, body["session_id"])
}

// Uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_EmpleadoAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(nil, "admin", "employee")
	resp := doRequest(t, app, tokenFor(t, "employee", time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Rol distinto al requerido → HTTP 403 Forbidden.
func TestRequireRole_EmpleadoBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(nil, "admin")
	resp := doRequest(t, app, tokenFor(t, "employee", time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"employee no debe poder acceder a ruta restringida a admin")
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

// Token sin claim de rol → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(nil, "admin")
	resp := doRequest(t, app, tokenFor(t, "", time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildTestApp(nil, "admin")
	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin Bearer", "Token abc", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"token expirado", tokenFor(t, "admin", -time.Minute), "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, tt.header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, bodyString(t, resp), tt.code)
		})
	}
}

func TestAuthMiddleware_SesionRevocada(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeSessions{err: domain.ErrSessionExpired}, "admin"), tokenFor(t, "admin", time.Hour))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "SESSION_EXPIRED")

	ok := doRequest(t, buildTestApp(fakeSessions{role: "admin"}, "admin"), tokenFor(t, "admin", time.Hour))
	defer ok.Body.Close()
	assert.Equal(t, http.StatusOK, ok.StatusCode)
}

func TestAuthMiddleware_CuentaDesactivada(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeSessions{err: domain.ErrAccountInactive}, "admin"), tokenFor(t, "admin", time.Hour))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "ACCOUNT_INACTIVE")
}

// El rol vigente en la base prevalece sobre el claim del token.
func TestAuthMiddleware_RolVigente(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeSessions{role: "employee"}, "admin"), tokenFor(t, "admin", time.Hour))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestAuthMiddleware_FalloDelAlmacenDeSesiones(t *testing.T) {
	resp := doRequest(t, buildTestApp(fakeSessions{err: errors.New("redis caído")}, "admin"), tokenFor(t, "admin", time.Hour))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAuthMiddleware_SecretIncorrecto(t *testing.T) {
	tok, _, err := pkgjwt.Generate(pkgjwt.Params{
		Secret: "otro-secret-completamente-distinto", TTL: time.Hour, UserID: testUserID, Role: "admin",
	})
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(nil, "admin"), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "secret incorrecto debe invalidar el token")
}
