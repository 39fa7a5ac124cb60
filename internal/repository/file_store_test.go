package repository

import (
	"context"
	"testing"
	"time"

	"github.com/clovermuaythai/booking-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate(day, startTime string) *models.ClassTemplate {
	return &models.ClassTemplate{
		ID:        models.TemplateID(day, startTime),
		Day:       day,
		StartTime: startTime,
		EndTime:   "19:30",
		ClassType: "Beginner Muay Thai",
		Capacity:  8,
	}
}

func testReservation(id, userID, templateID string, date time.Time) *models.Reservation {
	return &models.Reservation{
		ID:             id,
		UserID:         userID,
		UserName:       "Test User",
		TemplateID:     templateID,
		OccurrenceDate: models.DateOnly(date),
		CreatedAt:      time.Now(),
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	date := models.DateOnly(time.Now()).AddDate(0, 0, 3)

	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.ScheduleRepository().Add(context.Background(), testTemplate("Monday", "18:30")))
	require.NoError(t, fs.ReservationStore().Append(context.Background(), testReservation("res-1", "user-a", "mon-1830", date)))

	// A fresh store over the same directory sees the same data.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	templates, err := reopened.ScheduleRepository().List(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "mon-1830", templates[0].ID)

	reservations, err := reopened.ReservationStore().ListForSlot(context.Background(), "mon-1830", date)
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "res-1", reservations[0].ID)
}

func TestFileStore_AddTemplateConflict(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	sched := fs.ScheduleRepository()

	require.NoError(t, sched.Add(context.Background(), testTemplate("Monday", "18:30")))
	assert.ErrorIs(t, sched.Add(context.Background(), testTemplate("Monday", "18:30")), ErrConflict)
}

func TestFileStore_RemoveTemplateNotFound(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, fs.ScheduleRepository().Remove(context.Background(), "no-such"), ErrNotFound)
}

func TestFileStore_AppendDuplicate(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := fs.ReservationStore()
	date := models.DateOnly(time.Now()).AddDate(0, 0, 3)

	require.NoError(t, store.Append(context.Background(), testReservation("res-1", "user-a", "mon-1830", date)))

	// Same user, slot and date is rejected even under a fresh id.
	err = store.Append(context.Background(), testReservation("res-2", "user-a", "mon-1830", date))
	assert.ErrorIs(t, err, ErrDuplicate)

	// A different date for the same user is fine.
	require.NoError(t, store.Append(context.Background(), testReservation("res-3", "user-a", "mon-1830", date.AddDate(0, 0, 7))))
}

func TestFileStore_DeleteChecksOwnership(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := fs.ReservationStore()
	date := models.DateOnly(time.Now())

	require.NoError(t, store.Append(context.Background(), testReservation("res-1", "user-a", "mon-1830", date)))

	_, err = store.Delete(context.Background(), "res-1", "user-b")
	assert.ErrorIs(t, err, ErrNotFound)

	removed, err := store.Delete(context.Background(), "res-1", "user-a")
	require.NoError(t, err)
	assert.Equal(t, "res-1", removed.ID)

	_, err = store.Delete(context.Background(), "res-1", "user-a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_DeleteByIDIgnoresOwnership(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := fs.ReservationStore()

	require.NoError(t, store.Append(context.Background(), testReservation("res-1", "user-a", "mon-1830", models.DateOnly(time.Now()))))

	removed, err := store.DeleteByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, "user-a", removed.UserID)
}

func TestFileStore_DeleteByTemplate(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := fs.ReservationStore()
	date := models.DateOnly(time.Now())

	require.NoError(t, store.Append(context.Background(), testReservation("res-1", "user-a", "mon-1830", date)))
	require.NoError(t, store.Append(context.Background(), testReservation("res-2", "user-b", "mon-1830", date)))
	require.NoError(t, store.Append(context.Background(), testReservation("res-3", "user-a", "tue-1830", date.AddDate(0, 0, 1))))

	removed, err := store.DeleteByTemplate(context.Background(), "mon-1830")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "tue-1830", remaining[0].TemplateID)

	// Deleting again is a no-op, not an error.
	removed, err = store.DeleteByTemplate(context.Background(), "mon-1830")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFileStore_ListByUser(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := fs.ReservationStore()
	date := models.DateOnly(time.Now())

	require.NoError(t, store.Append(context.Background(), testReservation("res-1", "user-a", "mon-1830", date)))
	require.NoError(t, store.Append(context.Background(), testReservation("res-2", "user-b", "mon-1830", date)))

	mine, err := store.ListByUser(context.Background(), "user-a")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "res-1", mine[0].ID)
}

func TestFileStore_LockSlotUnknownTemplate(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = fs.ReservationStore().LockSlot(context.Background(), "no-such", time.Now(), func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
