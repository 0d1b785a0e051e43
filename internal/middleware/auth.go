package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Verifier resolves a bearer token to a user id. Implemented by
// service.AuthService.
type Verifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

type Auth struct {
	Verifier Verifier
}

func NewAuth(v Verifier) *Auth {
	return &Auth{Verifier: v}
}

const bearerPrefix = "Bearer "

// RequireAuth is the authentication gate for cart routes: it extracts
// the bearer token, verifies it and binds the resolved user id into the
// request scope. Downstream handlers use only this bound id. Any failure
// short-circuits with 401 and the handler is never invoked.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		userID, err := m.Verifier.Verify(c.Request().Context(), token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set("user_id", userID)
		return next(c)
	}
}
