package dto

import (
	"time"

	"github.com/clovermuaythai/booking-service/internal/models"
	"github.com/clovermuaythai/booking-service/internal/service"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	TemplateID     string    `json:"template_id"`
	OccurrenceDate string    `json:"date"`
	ClassType      string    `json:"class_type"`
	Day            string    `json:"day"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Instructor     string    `json:"instructor"`
	CreatedAt      time.Time `json:"created_at"`
}

type SlotAvailabilityResponse struct {
	TemplateID string `json:"template_id"`
	ClassType  string `json:"class_type"`
	Day        string `json:"day"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Instructor string `json:"instructor"`
	Capacity   int    `json:"capacity"`
	Taken      int    `json:"taken"`
	Available  int    `json:"available"`
	IsFull     bool   `json:"is_full"`
}

type SlotDetailResponse struct {
	SlotAvailabilityResponse
	Reservations []ReservationResponse `json:"reservations"`
}

type RemoveClassResponse struct {
	Message         string `json:"message"`
	RemovedBookings int64  `json:"removed_bookings"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		UserName:       r.UserName,
		TemplateID:     r.TemplateID,
		OccurrenceDate: r.OccurrenceDate.Format(dateLayout),
		ClassType:      r.ClassType,
		Day:            r.Day,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Instructor:     r.Instructor,
		CreatedAt:      r.CreatedAt,
	}
}

func ToSlotAvailabilityResponse(s service.SlotAvailability) SlotAvailabilityResponse {
	return SlotAvailabilityResponse{
		TemplateID: s.Template.ID,
		ClassType:  s.Template.ClassType,
		Day:        s.Template.Day,
		Date:       s.Date.Format(dateLayout),
		StartTime:  s.Template.StartTime,
		EndTime:    s.Template.EndTime,
		Instructor: s.Template.Instructor,
		Capacity:   s.Template.Capacity,
		Taken:      s.Seats.Taken,
		Available:  s.Seats.Available,
		IsFull:     s.Seats.IsFull,
	}
}

func ToSlotDetailResponse(d service.SlotDetail) SlotDetailResponse {
	reservations := make([]ReservationResponse, len(d.Reservations))
	for i, r := range d.Reservations {
		reservations[i] = ToReservationResponse(&r)
	}
	return SlotDetailResponse{
		SlotAvailabilityResponse: ToSlotAvailabilityResponse(service.SlotAvailability{
			Template: d.Template,
			Date:     d.Date,
			Seats:    d.Seats,
		}),
		Reservations: reservations,
	}
}
