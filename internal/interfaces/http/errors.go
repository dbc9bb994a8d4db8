package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// requestError error de la capa HTTP (cuerpo o parámetros mal formados).
type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{status: fiber.StatusBadRequest, code: code, message: message}
}

var errInvalidBody = badRequest("INVALID_BODY", "cuerpo inválido")

// bindBody parsea el JSON y aplica las reglas `validate` del DTO.
// Un cuerpo vacío deja el DTO en su valor cero.
func bindBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(out); err != nil {
			return errInvalidBody
		}
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return badRequest("VALIDATION", "entrada inválida")
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return badRequest("VALIDATION", strings.Join(msgs, "; "))
}

// dateRange lee start_date y end_date (YYYY-MM-DD, opcionales) de la query.
func dateRange(c *fiber.Ctx) (start, end *time.Time, err error) {
	var q dto.DateRangeQuery
	if err := c.QueryParser(&q); err != nil {
		return nil, nil, badRequest("INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	if start, err = optionalDate(q.StartDate); err != nil {
		return nil, nil, err
	}
	if end, err = optionalDate(q.EndDate); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := clock.ParseDate(s)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return &d, nil
}

// respondError traduce errores de dominio a HTTP con su código y mensaje estables.
// Cualquier otro error es 500 INTERNAL y se registra.
func respondError(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(re.status).JSON(dto.ErrorResponse{Code: re.code, Message: re.message})
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return c.Status(statusFor(de.Kind)).JSON(dto.ErrorResponse{Code: de.Code, Message: de.Message})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func statusFor(kind error) int {
	switch kind {
	case domain.ErrNotFound:
		return fiber.StatusNotFound
	case domain.ErrConflict:
		return fiber.StatusConflict
	case domain.ErrValidation:
		return fiber.StatusBadRequest
	case domain.ErrUnauthorized:
		return fiber.StatusUnauthorized
	case domain.ErrForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// forbidden respuesta estándar cuando el llamante no puede ver recursos de otro usuario.
func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar sus propios datos"})
}
