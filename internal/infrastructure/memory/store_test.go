package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/memory"
)

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// Dos dobles clics simultáneos: solo una entrada puede quedar registrada.
func TestAttendanceCreate_UnicidadBajoConcurrencia(t *testing.T) {
	repo := memory.NewStore().Attendance()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, conflicts := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Create(ctx, &entity.AttendanceRecord{
				ID: fmt.Sprintf("rec-%d", i), UserID: "u1", Date: day, ClockIn: day.Add(9 * time.Hour),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrAlreadyClockedIn):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, conflicts)
}

func TestAttendanceCloseOpen_SoloUnaVez(t *testing.T) {
	repo := memory.NewStore().Attendance()
	ctx := context.Background()
	in := day.Add(9 * time.Hour)
	require.NoError(t, repo.Create(ctx, &entity.AttendanceRecord{ID: "r1", UserID: "u1", Date: day, ClockIn: in}))

	rec, err := repo.FindByUserAndDate(ctx, "u1", day)
	require.NoError(t, err)
	rec.Close(in.Add(8*time.Hour), nil)

	closed, err := repo.CloseOpen(ctx, rec)
	require.NoError(t, err)
	assert.True(t, closed)

	rec.Close(in.Add(9*time.Hour), nil)
	closed, err = repo.CloseOpen(ctx, rec)
	require.NoError(t, err)
	assert.False(t, closed, "una jornada cerrada no se vuelve a escribir")

	stored, _ := repo.FindByUserAndDate(ctx, "u1", day)
	assert.InDelta(t, 8.0, *stored.TotalHours, 1e-9)
}

func TestAttendanceList_FiltroYOrden(t *testing.T) {
	repo := memory.NewStore().Attendance()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		d := day.AddDate(0, 0, i)
		require.NoError(t, repo.Create(ctx, &entity.AttendanceRecord{ID: fmt.Sprintf("r%d", i), UserID: "u1", Date: d, ClockIn: d.Add(9 * time.Hour)}))
	}
	require.NoError(t, repo.Create(ctx, &entity.AttendanceRecord{ID: "otro", UserID: "u2", Date: day, ClockIn: day.Add(8 * time.Hour)}))

	start, end := day.AddDate(0, 0, 1), day.AddDate(0, 0, 3)
	list, err := repo.ListByUser(ctx, "u1", repository.AttendanceFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, end, list[0].Date)
	assert.Equal(t, start, list[2].Date)

	all, err := repo.ListAll(ctx, repository.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestUserRepo_EmailUnico(t *testing.T) {
	users := memory.NewStore().Users()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "1", Email: "ana@acme.test"}))

	err := users.Create(ctx, &entity.User{ID: "2", Email: "ANA@acme.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := users.FindByEmail(ctx, "Ana@Acme.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "1", u.ID)

	missing, err := users.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLeaveRepo_OrdenPorCreacion(t *testing.T) {
	store := memory.NewStore()
	leaves := store.Leaves()
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, leaves.Create(ctx, &entity.LeaveRequest{ID: "a", UserID: "u1", Status: entity.LeavePending, CreatedAt: created}))
	require.NoError(t, leaves.Create(ctx, &entity.LeaveRequest{ID: "b", UserID: "u1", Status: entity.LeaveApproved, CreatedAt: created.Add(time.Hour)}))
	require.NoError(t, leaves.Create(ctx, &entity.LeaveRequest{ID: "c", UserID: "u2", Status: entity.LeavePending, CreatedAt: created}))

	mine, err := leaves.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "b", mine[0].ID)

	pending, err := leaves.ListByStatus(ctx, entity.LeavePending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "c", pending[0].ID, "con igual created_at gana la insertada después")

	require.NoError(t, store.RunLeave(ctx, func(l repository.LeaveRequestRepository, _ repository.UserRepository) error {
		return l.Delete(ctx, "a")
	}))
	gone, err := leaves.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
