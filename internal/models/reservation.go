package models

import "time"

// Reservation books one calendar occurrence of a class template for a user.
type Reservation struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"not null;index" json:"user_id"`
	UserName       string    `gorm:"not null" json:"user_name"`
	TemplateID     string    `gorm:"not null;index" json:"template_id"`
	OccurrenceDate time.Time `gorm:"type:date;not null" json:"occurrence_date"`

	// Snapshot of the template at booking time, so later timetable edits
	// don't rewrite existing bookings.
	ClassType  string `json:"class_type"`
	Day        string `json:"day"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Instructor string `json:"instructor"`

	CreatedAt time.Time `json:"created_at"`
}

// DateOnly truncates t to its calendar date, dropping the time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
// Bookings carry full timestamps but are always compared at day granularity.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
