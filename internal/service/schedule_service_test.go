package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleAdd_DerivesID(t *testing.T) {
	sched, res := newTestStores(t)
	svc := NewScheduleService(sched, res)

	tpl, err := svc.Add(context.Background(), AddTemplateInput{
		Day:        "Monday",
		StartTime:  "18:30",
		EndTime:    "19:30",
		ClassType:  "Beginner Muay Thai",
		Instructor: "Coach John",
		Capacity:   8,
	})

	require.NoError(t, err)
	assert.Equal(t, "mon-1830", tpl.ID)
}

func TestScheduleAdd_Conflict(t *testing.T) {
	sched, res := newTestStores(t)
	svc := NewScheduleService(sched, res)

	input := AddTemplateInput{
		Day:       "Monday",
		StartTime: "18:30",
		EndTime:   "19:30",
		ClassType: "Beginner Muay Thai",
		Capacity:  8,
	}
	_, err := svc.Add(context.Background(), input)
	require.NoError(t, err)

	// Same day and start time, even with a different class type.
	input.ClassType = "Sparring Session"
	_, err = svc.Add(context.Background(), input)
	assert.ErrorIs(t, err, ErrTemplateConflict)
}

func TestScheduleAdd_Validation(t *testing.T) {
	sched, res := newTestStores(t)
	svc := NewScheduleService(sched, res)

	base := AddTemplateInput{
		Day:       "Monday",
		StartTime: "18:30",
		EndTime:   "19:30",
		ClassType: "Beginner Muay Thai",
		Capacity:  8,
	}

	bad := base
	bad.Day = "Funday"
	_, err := svc.Add(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	bad = base
	bad.StartTime = "6:30pm"
	_, err = svc.Add(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidTemplate)

	bad = base
	bad.Capacity = 0
	_, err = svc.Add(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestScheduleRemove_CascadesOwnReservationsOnly(t *testing.T) {
	sched, res := newTestStores(t)
	scheduleSvc := NewScheduleService(sched, res)
	bookingSvc := NewBookingService(sched, res, nil)

	monday := addTemplate(t, sched, "Monday", "18:30", 8)
	tuesday := addTemplate(t, sched, "Tuesday", "18:30", 8)

	_, err := bookingSvc.CreateReservation(context.Background(), "user-a", "Alice", monday.ID, nextDate(time.Monday))
	require.NoError(t, err)
	_, err = bookingSvc.CreateReservation(context.Background(), "user-b", "Bob", monday.ID, nextDate(time.Monday))
	require.NoError(t, err)
	_, err = bookingSvc.CreateReservation(context.Background(), "user-a", "Alice", tuesday.ID, nextDate(time.Tuesday))
	require.NoError(t, err)

	removed, err := scheduleSvc.Remove(context.Background(), monday.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	remaining, err := res.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, tuesday.ID, remaining[0].TemplateID)
}

func TestScheduleRemove_NotFound(t *testing.T) {
	sched, res := newTestStores(t)
	svc := NewScheduleService(sched, res)

	_, err := svc.Remove(context.Background(), "no-such-class")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestScheduleOverview(t *testing.T) {
	sched, res := newTestStores(t)
	scheduleSvc := NewScheduleService(sched, res)
	bookingSvc := NewBookingService(sched, res, nil)

	tpl := addTemplate(t, sched, "Monday", "18:30", 8)
	date := nextDate(time.Monday)
	booking, err := bookingSvc.CreateReservation(context.Background(), "user-a", "Alice", tpl.ID, date)
	require.NoError(t, err)

	details, err := scheduleSvc.Overview(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, details, 1)

	slot := details[0]
	assert.Equal(t, tpl.ID, slot.Template.ID)
	assert.True(t, slot.Template.MatchesDate(slot.Date))
	assert.Equal(t, 1, slot.Seats.Taken)
	require.Len(t, slot.Reservations, 1)
	assert.Equal(t, booking.ID, slot.Reservations[0].ID)
}
