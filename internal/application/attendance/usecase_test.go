package attendance_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

type fixture struct {
	uc    *attendance.UseCase
	store *memory.Store
	clock *clock.Fixed
	user  *entity.User
}

type countingMetrics struct {
	mu     sync.Mutex
	events map[string]int
}

func (m *countingMetrics) ClockEvent(e string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[e]++
}

func newFixture(t *testing.T, metrics attendance.Metrics) *fixture {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewFixed(time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))
	user := addUser(t, store, "ana@acme.test", true)
	return &fixture{
		uc:    attendance.NewUseCase(store.Users(), store.Attendance(), clk, metrics, logger.Nop()),
		store: store,
		clock: clk,
		user:  user,
	}
}

func addUser(t *testing.T, store *memory.Store, email string, active bool) *entity.User {
	t.Helper()
	u := &entity.User{ID: entity.NewID(), Email: email, FullName: email, Role: entity.RoleEmployee, Active: active}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func strPtr(s string) *string { return &s }

func TestClockIn_UnaVezPorDia(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	rec, err := f.uc.ClockIn(ctx, f.user.ID, strPtr("  oficina  "))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", rec.Date)
	assert.Nil(t, rec.ClockOut)
	assert.Nil(t, rec.TotalHours)
	assert.Equal(t, "oficina", *rec.Notes)

	f.clock.Advance(time.Minute)
	_, err = f.uc.ClockIn(ctx, f.user.ID, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyClockedIn)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "already clocked in today")
}

func TestClockIn_UsuarioInexistenteOInactivo(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.ClockIn(ctx, entity.NewID(), nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.uc.ClockIn(ctx, "no-es-un-uuid", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inactive := addUser(t, f.store, "baja@acme.test", false)
	_, err = f.uc.ClockIn(ctx, inactive.ID, nil)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestClockOut_CalculaHoras(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.ClockIn(ctx, f.user.ID, strPtr("entrada"))
	require.NoError(t, err)

	f.clock.Set(time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC))
	rec, err := f.uc.ClockOut(ctx, f.user.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, rec.ClockOut)
	require.NotNil(t, rec.TotalHours)
	assert.InDelta(t, 8.0, *rec.TotalHours, 1e-9)
	assert.Equal(t, "entrada", *rec.Notes, "sin notas nuevas se conservan las de la entrada")
}

func TestClockOut_SobrescribeNotas(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.uc.ClockIn(ctx, f.user.ID, strPtr("entrada"))
	require.NoError(t, err)

	f.clock.Advance(4*time.Hour + 15*time.Minute)
	rec, err := f.uc.ClockOut(ctx, f.user.ID, strPtr("cita médica"))
	require.NoError(t, err)
	assert.Equal(t, "cita médica", *rec.Notes)
	assert.InDelta(t, 4.25, *rec.TotalHours, 1e-9)
}

func TestClockOut_SinEntrada(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.ClockOut(context.Background(), f.user.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNoClockInToday)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "no clock-in record found for today")
}

func TestClockOut_DosVeces(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.uc.ClockIn(ctx, f.user.ID, nil)
	require.NoError(t, err)
	f.clock.Advance(8 * time.Hour)
	first, err := f.uc.ClockOut(ctx, f.user.ID, nil)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	_, err = f.uc.ClockOut(ctx, f.user.ID, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyClockedOut)
	assert.EqualError(t, err, "already clocked out today")

	status, err := f.uc.GetTodayStatus(ctx, f.user.ID)
	require.NoError(t, err)
	assert.InDelta(t, *first.TotalHours, *status.CurrentRecord.TotalHours, 1e-9, "las horas no se recalculan")
}

func TestClockOut_MismoInstanteQueEntrada(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.uc.ClockIn(ctx, f.user.ID, nil)
	require.NoError(t, err)

	_, err = f.uc.ClockOut(ctx, f.user.ID, nil)
	assert.ErrorIs(t, err, domain.ErrClockOutBeforeIn)
}

// Tras medianoche (hora de la organización) empieza una jornada nueva.
func TestClockIn_DiaSiguienteEsOtraJornada(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.uc.ClockIn(ctx, f.user.ID, nil)
	require.NoError(t, err)

	f.clock.Set(time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC))
	_, err = f.uc.ClockOut(ctx, f.user.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNoClockInToday, "la jornada abierta de ayer no se cierra hoy")

	rec, err := f.uc.ClockIn(ctx, f.user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", rec.Date)
}

func TestClockIn_ZonaHorariaDeLaOrganizacion(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	f := newFixture(t, nil)
	// 2024-01-16 03:00 UTC = 2024-01-15 22:00 en Bogotá.
	f.clock.Set(time.Date(2024, 1, 16, 3, 0, 0, 0, time.UTC).In(bogota))

	rec, err := f.uc.ClockIn(context.Background(), f.user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", rec.Date)
}

func TestGetTodayStatus_Transiciones(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	s, err := f.uc.GetTodayStatus(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, s.HasClockedIn)
	assert.False(t, s.HasClockedOut)
	assert.Nil(t, s.CurrentRecord)

	_, err = f.uc.ClockIn(ctx, f.user.ID, nil)
	require.NoError(t, err)
	s, err = f.uc.GetTodayStatus(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, s.HasClockedIn)
	assert.False(t, s.HasClockedOut)
	require.NotNil(t, s.CurrentRecord)

	again, err := f.uc.GetTodayStatus(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, s, again, "lecturas repetidas sin mutación son idénticas")

	f.clock.Advance(time.Hour)
	_, err = f.uc.ClockOut(ctx, f.user.ID, nil)
	require.NoError(t, err)
	s, err = f.uc.GetTodayStatus(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, s.HasClockedIn)
	assert.True(t, s.HasClockedOut)

	_, err = f.uc.GetTodayStatus(ctx, entity.NewID())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserAttendance_RangoYOrden(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	empty, err := f.uc.GetUserAttendance(ctx, f.user.ID, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for d := 15; d <= 19; d++ {
		f.clock.Set(time.Date(2024, 1, d, 9, 0, 0, 0, time.UTC))
		_, err := f.uc.ClockIn(ctx, f.user.ID, nil)
		require.NoError(t, err)
	}

	all, err := f.uc.GetUserAttendance(ctx, f.user.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "2024-01-19", all[0].Date)
	assert.Equal(t, "2024-01-15", all[4].Date)

	start := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	ranged, err := f.uc.GetUserAttendance(ctx, f.user.ID, &start, &end)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2024-01-17", ranged[0].Date)

	_, err = f.uc.GetUserAttendance(ctx, f.user.ID, &end, &start)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = f.uc.GetUserAttendance(ctx, entity.NewID(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetAllAttendance_TodosLosUsuarios(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	other := addUser(t, f.store, "luis@acme.test", true)

	_, err := f.uc.ClockIn(ctx, f.user.ID, nil)
	require.NoError(t, err)
	f.clock.Set(time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC))
	_, err = f.uc.ClockIn(ctx, other.ID, nil)
	require.NoError(t, err)

	all, err := f.uc.GetAllAttendance(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].UserID)
}

func TestClockIn_ConcurrenteSoloUnoGana(t *testing.T) {
	m := &countingMetrics{events: map[string]int{}}
	f := newFixture(t, m)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.ClockIn(ctx, f.user.ID, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyClockedIn)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, m.events["clock_in"])
}
