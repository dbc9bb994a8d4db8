// Package clock fija la política de "día calendario": la fecha de hoy se calcula
// en la zona horaria de la organización, nunca en la del host.
package clock

import "time"

// Clock fuente de tiempo inyectable.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Org reloj real en la zona horaria de la organización.
type Org struct {
	loc *time.Location
}

// New construye el reloj. loc nil equivale a UTC.
func New(loc *time.Location) *Org {
	if loc == nil {
		loc = time.UTC
	}
	return &Org{loc: loc}
}

func (c *Org) Now() time.Time           { return time.Now().In(c.loc) }
func (c *Org) Location() *time.Location { return c.loc }

// Fixed reloj detenido para tests. Set/Advance permiten mover la hora.
type Fixed struct {
	now time.Time
}

// NewFixed construye un reloj detenido en t (se conserva la Location de t).
func NewFixed(t time.Time) *Fixed { return &Fixed{now: t} }

func (c *Fixed) Now() time.Time           { return c.now }
func (c *Fixed) Location() *time.Location { return c.now.Location() }
func (c *Fixed) Set(t time.Time)          { c.now = t }
func (c *Fixed) Advance(d time.Duration)  { c.now = c.now.Add(d) }

// Today devuelve la medianoche del día calendario actual de c, expresada en UTC
// para que la fecha almacenada (columna DATE) sea la misma en cualquier host.
func Today(c Clock) time.Time {
	return DateOf(c.Now().In(c.Location()))
}

// DateOf trunca t a su fecha calendario (en la Location de t) y la expresa como medianoche UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha YYYY-MM-DD como medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DateLayout formato de fechas calendario en la API.
const DateLayout = "2006-01-02"
