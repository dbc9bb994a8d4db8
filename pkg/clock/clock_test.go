package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/pkg/clock"
)

func TestToday_UsaZonaDeLaOrganizacion(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	// 2024-03-10 02:00 UTC es todavía 2024-03-09 21:00 en Bogotá.
	instant := time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC)
	c := clock.NewFixed(instant.In(bogota))

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), clock.Today(c))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), clock.Today(clock.NewFixed(instant)))
}

func TestFixed_Advance(t *testing.T) {
	c := clock.NewFixed(time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC))
	c.Advance(time.Hour)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), clock.Today(c))
}

func TestParseDate(t *testing.T) {
	d, err := clock.ParseDate("2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), d)

	_, err = clock.ParseDate("20/01/2024")
	assert.Error(t, err)
}
