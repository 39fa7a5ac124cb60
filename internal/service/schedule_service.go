package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clovermuaythai/booking-service/internal/availability"
	"github.com/clovermuaythai/booking-service/internal/models"
	"github.com/clovermuaythai/booking-service/internal/repository"
)

var (
	ErrTemplateConflict = errors.New("class already exists for this day and time")
	ErrInvalidTemplate  = errors.New("invalid class template")
)

type AddTemplateInput struct {
	Day         string
	StartTime   string
	EndTime     string
	ClassType   string
	Instructor  string
	Capacity    int
	Description string
}

// SlotDetail is one upcoming class occurrence with its seat counts and
// roster, as shown on the admin dashboard.
type SlotDetail struct {
	Template     models.ClassTemplate      `json:"template"`
	Date         time.Time                 `json:"date"`
	Seats        availability.Availability `json:"seats"`
	Reservations []models.Reservation      `json:"reservations"`
}

type ScheduleService interface {
	List(ctx context.Context) ([]models.ClassTemplate, error)
	Add(ctx context.Context, input AddTemplateInput) (*models.ClassTemplate, error)
	// Remove deletes the template and cascades to every reservation
	// referencing it, returning how many were removed.
	Remove(ctx context.Context, id string) (int64, error)
	Overview(ctx context.Context, days int) ([]SlotDetail, error)
}

type scheduleService struct {
	schedule     repository.ScheduleRepository
	reservations repository.ReservationStore
}

func NewScheduleService(schedule repository.ScheduleRepository, reservations repository.ReservationStore) ScheduleService {
	return &scheduleService{schedule: schedule, reservations: reservations}
}

func (s *scheduleService) List(ctx context.Context) ([]models.ClassTemplate, error) {
	return s.schedule.List(ctx)
}

func (s *scheduleService) Add(ctx context.Context, input AddTemplateInput) (*models.ClassTemplate, error) {
	if _, err := models.ParseDay(input.Day); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	for _, t := range []string{input.StartTime, input.EndTime} {
		if _, err := time.Parse("15:04", t); err != nil {
			return nil, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidTemplate, t)
		}
	}
	if input.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidTemplate)
	}

	tpl := &models.ClassTemplate{
		ID:          models.TemplateID(input.Day, input.StartTime),
		Day:         input.Day,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		ClassType:   input.ClassType,
		Instructor:  input.Instructor,
		Capacity:    input.Capacity,
		Description: input.Description,
	}

	if err := s.schedule.Add(ctx, tpl); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrTemplateConflict
		}
		return nil, err
	}
	return tpl, nil
}

func (s *scheduleService) Remove(ctx context.Context, id string) (int64, error) {
	if err := s.schedule.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrTemplateNotFound
		}
		return 0, err
	}

	// Cascade: orphaned reservations are deleted as a batch, not
	// individually validated.
	return s.reservations.DeleteByTemplate(ctx, id)
}

func (s *scheduleService) Overview(ctx context.Context, days int) ([]SlotDetail, error) {
	if days <= 0 || days > maxRangeDays {
		days = maxRangeDays
	}

	templates, err := s.schedule.List(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := models.DateOnly(time.Now())
	var out []SlotDetail
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, i)
		for _, tpl := range templates {
			if !tpl.MatchesDate(d) {
				continue
			}

			var roster []models.Reservation
			for _, r := range all {
				if r.TemplateID == tpl.ID && models.SameDay(r.OccurrenceDate, d) {
					roster = append(roster, r)
				}
			}

			out = append(out, SlotDetail{
				Template:     tpl,
				Date:         d,
				Seats:        availability.Compute(tpl, d, all),
				Reservations: roster,
			})
		}
	}
	return out, nil
}
