package service

import (
	"context"
	"errors"
	"time"

	"github.com/clovermuaythai/booking-service/internal/availability"
	"github.com/clovermuaythai/booking-service/internal/models"
	"github.com/clovermuaythai/booking-service/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrPastDate            = errors.New("cannot book a class on a past date")
	ErrDayMismatch         = errors.New("date does not fall on the class day")
	ErrTemplateNotFound    = errors.New("class not found")
	ErrDuplicateBooking    = errors.New("you have already booked this class")
	ErrClassFull           = errors.New("class is full")
	ErrReservationNotFound = errors.New("booking not found")
)

// EventPublisher emits booking lifecycle events for downstream consumers
// (the email worker, primarily). Publishing is best-effort: a broker outage
// must never fail a committed booking.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// maxRangeDays caps availability queries, matching the admin dashboard window.
const maxRangeDays = 30

type SlotAvailability struct {
	Template models.ClassTemplate      `json:"template"`
	Date     time.Time                 `json:"date"`
	Seats    availability.Availability `json:"seats"`
}

type BookingService interface {
	CreateReservation(ctx context.Context, userID, userName, templateID string, date time.Time) (*models.Reservation, error)
	CancelReservation(ctx context.Context, userID, reservationID string) (*models.Reservation, error)
	AdminCancelReservation(ctx context.Context, reservationID string) (*models.Reservation, error)
	ListUserReservations(ctx context.Context, userID string) ([]models.Reservation, error)
	Availability(ctx context.Context, templateID string, from, to time.Time) ([]SlotAvailability, error)
}

type bookingService struct {
	schedule     repository.ScheduleRepository
	reservations repository.ReservationStore
	publisher    EventPublisher
}

func NewBookingService(schedule repository.ScheduleRepository, reservations repository.ReservationStore, publisher EventPublisher) BookingService {
	return &bookingService{
		schedule:     schedule,
		reservations: reservations,
		publisher:    publisher,
	}
}

// CreateReservation validates the request, then re-checks duplicates and
// capacity against freshly read state inside the slot lock before committing.
// A caller-supplied availability snapshot is never trusted.
func (s *bookingService) CreateReservation(ctx context.Context, userID, userName, templateID string, date time.Time) (*models.Reservation, error) {
	occurrence := models.DateOnly(date)

	// Past dates are unbookable; same-day bookings are allowed.
	if occurrence.Before(models.DateOnly(time.Now())) {
		return nil, ErrPastDate
	}

	tpl, err := s.schedule.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if !tpl.MatchesDate(occurrence) {
		return nil, ErrDayMismatch
	}

	var created *models.Reservation
	err = s.reservations.LockSlot(ctx, tpl.ID, occurrence, func(ctx context.Context) error {
		current, err := s.reservations.ListForSlot(ctx, tpl.ID, occurrence)
		if err != nil {
			return err
		}

		for _, r := range current {
			if r.UserID == userID {
				return ErrDuplicateBooking
			}
		}

		if availability.Compute(*tpl, occurrence, current).IsFull {
			return ErrClassFull
		}

		res := &models.Reservation{
			ID:             uuid.NewString(),
			UserID:         userID,
			UserName:       userName,
			TemplateID:     tpl.ID,
			OccurrenceDate: occurrence,
			ClassType:      tpl.ClassType,
			Day:            tpl.Day,
			StartTime:      tpl.StartTime,
			EndTime:        tpl.EndTime,
			Instructor:     tpl.Instructor,
			CreatedAt:      time.Now(),
		}
		if err := s.reservations.Append(ctx, res); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateBooking
			}
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		// The template can disappear between the lookup and the lock.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	s.publish("booking.created", created)
	return created, nil
}

func (s *bookingService) CancelReservation(ctx context.Context, userID, reservationID string) (*models.Reservation, error) {
	res, err := s.reservations.Delete(ctx, reservationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	s.publish("booking.cancelled", res)
	return res, nil
}

// AdminCancelReservation matches by id alone; ownership is not checked.
func (s *bookingService) AdminCancelReservation(ctx context.Context, reservationID string) (*models.Reservation, error) {
	res, err := s.reservations.DeleteByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	s.publish("booking.cancelled", res)
	return res, nil
}

func (s *bookingService) ListUserReservations(ctx context.Context, userID string) ([]models.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}

// Availability expands templates over [from, to], one row per occurrence
// whose weekday matches, capped at maxRangeDays.
func (s *bookingService) Availability(ctx context.Context, templateID string, from, to time.Time) ([]SlotAvailability, error) {
	var templates []models.ClassTemplate
	if templateID != "" {
		tpl, err := s.schedule.FindByID(ctx, templateID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, err
		}
		templates = []models.ClassTemplate{*tpl}
	} else {
		var err error
		templates, err = s.schedule.List(ctx)
		if err != nil {
			return nil, err
		}
	}

	from = models.DateOnly(from)
	to = models.DateOnly(to)
	if limit := from.AddDate(0, 0, maxRangeDays-1); to.After(limit) {
		to = limit
	}

	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []SlotAvailability
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		for _, tpl := range templates {
			if !tpl.MatchesDate(d) {
				continue
			}
			out = append(out, SlotAvailability{
				Template: tpl,
				Date:     d,
				Seats:    availability.Compute(tpl, d, all),
			})
		}
	}
	return out, nil
}

func (s *bookingService) publish(routingKey string, res *models.Reservation) {
	if s.publisher == nil || res == nil {
		return
	}
	_ = s.publisher.Publish(routingKey, res)
}
