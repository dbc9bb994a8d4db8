package dto

// Tamaños de página de los listados de administración.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest ?limit=&offset= de los listados paginados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize deja Limit en [1, MaxPageSize] (0 o negativo toma DefaultPageSize) y Offset >= 0.
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageSize
	case p.Limit > MaxPageSize:
		p.Limit = MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResponse página efectivamente servida.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// DateRangeQuery ?start_date=&end_date= (YYYY-MM-DD, inclusivo, ambos opcionales).
// Lo comparten los listados de asistencia y los reportes.
type DateRangeQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// SuccessResponse confirmación de operaciones sin cuerpo propio (logout, borrado).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse cuerpo de todo error HTTP: Code estable para clientes, Message legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
