package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/clovermuaythai/booking-service/internal/dto"
	"github.com/clovermuaythai/booking-service/internal/service"
	"github.com/labstack/echo/v4"
)

type ScheduleHandler struct {
	svc      service.ScheduleService
	bookings service.BookingService
}

func NewScheduleHandler(svc service.ScheduleService, bookings service.BookingService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, bookings: bookings}
}

func (h *ScheduleHandler) RegisterRoutes(e *echo.Echo, requireAdmin echo.MiddlewareFunc) {
	e.GET("/api/v1/classes", h.ListClasses)

	admin := e.Group("/api/v1/admin", requireAdmin)
	admin.GET("/classes", h.Overview)
	admin.POST("/classes", h.AddClass)
	admin.DELETE("/classes/:id", h.RemoveClass)
	admin.DELETE("/bookings/:id", h.AdminCancelBooking)
}

// ListClasses returns the weekly timetable alongside the current week's
// seat counts, which is everything the booking page needs in one call.
func (h *ScheduleHandler) ListClasses(c echo.Context) error {
	ctx := c.Request().Context()

	templates, err := h.svc.List(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	slots, err := h.bookings.Availability(ctx, "", now, now.AddDate(0, 0, 6))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	week := make([]dto.SlotAvailabilityResponse, len(slots))
	for i, s := range slots {
		week[i] = dto.ToSlotAvailabilityResponse(s)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"classes": templates,
		"week":    week,
	})
}

func (h *ScheduleHandler) Overview(c echo.Context) error {
	days := 30
	if v := c.QueryParam("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a positive integer")
		}
		days = parsed
	}

	details, err := h.svc.Overview(c.Request().Context(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.SlotDetailResponse, len(details))
	for i, d := range details {
		resp[i] = dto.ToSlotDetailResponse(d)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ScheduleHandler) AddClass(c echo.Context) error {
	var req dto.AddClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Day == "" || req.StartTime == "" || req.EndTime == "" || req.ClassType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "day, start_time, end_time and class_type are required")
	}

	tpl, err := h.svc.Add(c.Request().Context(), service.AddTemplateInput{
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClassType:   req.ClassType,
		Instructor:  req.Instructor,
		Capacity:    req.Capacity,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTemplate):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrTemplateConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, tpl)
}

func (h *ScheduleHandler) RemoveClass(c echo.Context) error {
	removed, err := h.svc.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.RemoveClassResponse{
		Message:         "class removed",
		RemovedBookings: removed,
	})
}

func (h *ScheduleHandler) AdminCancelBooking(c echo.Context) error {
	res, err := h.bookings.AdminCancelReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToReservationResponse(res))
}
