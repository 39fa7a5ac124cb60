// Package repository defines the storage ports for the timetable and the
// reservation book, with two adapters: postgres (production) and a JSON file
// store (development). Both serialize check-and-commit per class occurrence
// via LockSlot so the booking service stays backend-neutral.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clovermuaythai/booking-service/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate reservation")
	ErrConflict    = errors.New("template already exists for this day and time")
	ErrUnavailable = errors.New("storage unavailable")
)

type ScheduleRepository interface {
	List(ctx context.Context) ([]models.ClassTemplate, error)
	FindByID(ctx context.Context, id string) (*models.ClassTemplate, error)
	// Add rejects a template whose (day, start time) pair is already taken
	// with ErrConflict.
	Add(ctx context.Context, tpl *models.ClassTemplate) error
	Remove(ctx context.Context, id string) error
}

type ReservationStore interface {
	ListAll(ctx context.Context) ([]models.Reservation, error)
	ListForSlot(ctx context.Context, templateID string, date time.Time) ([]models.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	// Append commits a new reservation. Backends that can detect a
	// (user, template, date) collision natively return ErrDuplicate.
	Append(ctx context.Context, res *models.Reservation) error
	// Delete removes a reservation only if it belongs to userID.
	Delete(ctx context.Context, id, userID string) (*models.Reservation, error)
	// DeleteByID is the privileged path: it matches by id alone.
	DeleteByID(ctx context.Context, id string) (*models.Reservation, error)
	// DeleteByTemplate removes every reservation referencing templateID and
	// reports how many were removed. Used when a template is deleted.
	DeleteByTemplate(ctx context.Context, templateID string) (int64, error)
	// LockSlot runs fn with bookings for (templateID, date) serialized
	// against concurrent callers. fn receives a context that routes the
	// store's other methods through the same critical section.
	LockSlot(ctx context.Context, templateID string, date time.Time, fn func(ctx context.Context) error) error
}
