package availability

import (
	"fmt"
	"testing"
	"time"

	"github.com/clovermuaythai/booking-service/internal/models"
	"github.com/stretchr/testify/assert"
)

var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // a Monday

func tpl(capacity int) models.ClassTemplate {
	return models.ClassTemplate{
		ID:        "mon-1830",
		Day:       "Monday",
		StartTime: "18:30",
		EndTime:   "19:30",
		ClassType: "Beginner Muay Thai",
		Capacity:  capacity,
	}
}

func res(userID, templateID string, date time.Time) models.Reservation {
	return models.Reservation{
		ID:             "res-" + userID,
		UserID:         userID,
		TemplateID:     templateID,
		OccurrenceDate: date,
	}
}

func TestCompute_EmptySlot(t *testing.T) {
	got := Compute(tpl(8), monday, nil)

	assert.Equal(t, 0, got.Taken)
	assert.Equal(t, 8, got.Available)
	assert.False(t, got.IsFull)
}

func TestCompute_CountsOnlyMatchingSlot(t *testing.T) {
	otherMonday := monday.AddDate(0, 0, 7)
	reservations := []models.Reservation{
		res("a", "mon-1830", monday),
		res("b", "mon-1830", otherMonday),  // same template, different date
		res("c", "tue-1830", monday),       // different template
		res("d", "mon-1830", monday),
	}

	got := Compute(tpl(8), monday, reservations)

	assert.Equal(t, 2, got.Taken)
	assert.Equal(t, 6, got.Available)
	assert.False(t, got.IsFull)
}

func TestCompute_DayGranularity(t *testing.T) {
	// Stored occurrence timestamps may carry a time of day; they still count
	// toward the same calendar date.
	reservations := []models.Reservation{
		res("a", "mon-1830", monday.Add(18*time.Hour+30*time.Minute)),
	}

	got := Compute(tpl(8), monday, reservations)

	assert.Equal(t, 1, got.Taken)
}

func TestCompute_FullBoundary(t *testing.T) {
	reservations := []models.Reservation{
		res("a", "mon-1830", monday),
		res("b", "mon-1830", monday),
	}

	got := Compute(tpl(2), monday, reservations)

	assert.Equal(t, 2, got.Taken)
	assert.Equal(t, 0, got.Available)
	assert.True(t, got.IsFull)
}

func TestCompute_AvailableNeverNegative(t *testing.T) {
	var reservations []models.Reservation
	for i := 0; i < 3; i++ {
		reservations = append(reservations, res(fmt.Sprintf("u%d", i), "mon-1830", monday))
	}

	got := Compute(tpl(2), monday, reservations)

	assert.Equal(t, 3, got.Taken)
	assert.Equal(t, 0, got.Available)
	assert.True(t, got.IsFull)
}
