package middleware

import (
	"net/http"

	"github.com/clovermuaythai/booking-service/internal/dto"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error echo surfaces as `{"message": ...}`, the
// shape the handlers produce via echo.NewHTTPError. Anything that is not an
// *echo.HTTPError comes out as a plain 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
