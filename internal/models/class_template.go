package models

import (
	"fmt"
	"strings"
	"time"
)

// ClassTemplate is a recurring weekly class slot on the timetable.
type ClassTemplate struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Day         string    `gorm:"not null" json:"day"`
	StartTime   string    `gorm:"not null" json:"start_time"`
	EndTime     string    `gorm:"not null" json:"end_time"`
	ClassType   string    `gorm:"not null" json:"class_type"`
	Instructor  string    `json:"instructor"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TemplateID derives the stable template key from day and start time,
// e.g. ("Monday", "18:30") -> "mon-1830".
func TemplateID(day, startTime string) string {
	prefix := strings.ToLower(day)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return prefix + "-" + strings.ReplaceAll(startTime, ":", "")
}

// ParseDay resolves a weekday name ("Monday", case-insensitive) to time.Weekday.
func ParseDay(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// MatchesDate reports whether date falls on the template's weekday.
func (t ClassTemplate) MatchesDate(date time.Time) bool {
	day, err := ParseDay(t.Day)
	if err != nil {
		return false
	}
	return date.Weekday() == day
}
