// Package availability derives seat counts for one calendar occurrence of a
// class template. It is pure: callers supply the reservation set, typically
// freshly re-read by the booking protocol right before committing.
package availability

import (
	"time"

	"github.com/clovermuaythai/booking-service/internal/models"
)

type Availability struct {
	Taken     int  `json:"taken"`
	Available int  `json:"available"`
	IsFull    bool `json:"is_full"`
}

// Compute counts reservations for the template on the given calendar date.
// Occurrence dates are compared at day granularity, never by timestamp equality.
func Compute(tpl models.ClassTemplate, date time.Time, reservations []models.Reservation) Availability {
	taken := 0
	for _, r := range reservations {
		if r.TemplateID == tpl.ID && models.SameDay(r.OccurrenceDate, date) {
			taken++
		}
	}

	available := tpl.Capacity - taken
	if available < 0 {
		available = 0
	}

	return Availability{
		Taken:     taken,
		Available: available,
		IsFull:    taken >= tpl.Capacity,
	}
}
