package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/clovermuaythai/booking-service/internal/dto"
	"github.com/clovermuaythai/booking-service/internal/repository"
	"github.com/clovermuaythai/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/bookings", h.CreateBooking)
	api.GET("/bookings", h.ListBookings)
	api.DELETE("/bookings/:id", h.CancelBooking)
	api.GET("/availability", h.GetAvailability)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" || req.UserName == "" || req.TemplateID == "" || req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id, user_name, template_id and date are required")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	res, err := h.svc.CreateReservation(c.Request().Context(), req.UserID, req.UserName, req.TemplateID, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPastDate):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDayMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTemplateNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateBooking):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrClassFull):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, repository.ErrUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(res))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	reservationID := c.Param("id")
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	res, err := h.svc.CancelReservation(c.Request().Context(), userID, reservationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrUnavailable):
			return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	reservations, err := h.svc.ListUserReservations(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAvailability defaults to the next seven days, the window the booking
// page shows.
func (h *BookingHandler) GetAvailability(c echo.Context) error {
	from := time.Now()
	to := from.AddDate(0, 0, 6)

	if v := c.QueryParam("from"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
		}
		from = parsed
		to = from.AddDate(0, 0, 6)
	}
	if v := c.QueryParam("to"); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
		}
		to = parsed
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to must not be before from")
	}

	slots, err := h.svc.Availability(c.Request().Context(), c.QueryParam("template_id"), from, to)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.SlotAvailabilityResponse, len(slots))
	for i, s := range slots {
		resp[i] = dto.ToSlotAvailabilityResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}
