package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AdminAuthorizer decides whether a bearer token grants admin access.
// It is injected explicitly; there is no implicit all-admin fallback when
// configuration is missing.
type AdminAuthorizer interface {
	IsAdmin(token string) bool
}

type staticTokenAuthorizer struct {
	token string
}

// NewStaticTokenAuthorizer authorizes requests carrying the configured token.
// An empty token authorizes nobody.
func NewStaticTokenAuthorizer(token string) AdminAuthorizer {
	return &staticTokenAuthorizer{token: token}
}

func (a *staticTokenAuthorizer) IsAdmin(token string) bool {
	if a.token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.token), []byte(token)) == 1
}

func RequireAdmin(auth AdminAuthorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || !auth.IsAdmin(token) {
				return echo.NewHTTPError(http.StatusUnauthorized, "admin access required")
			}
			return next(c)
		}
	}
}
