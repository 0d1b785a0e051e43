package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndemidov/storefront/internal/service"
)

// respondError maps service sentinels to status codes. Unexpected errors
// render a constant body; the detail goes to the log only.
func respondError(c echo.Context, l *slog.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		l.Warn("request rejected", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errors.Is(err, service.ErrDuplicateEmail):
		l.Warn("request rejected", "status", 409, "error", err)
		return c.JSON(http.StatusConflict, echo.Map{"message": "email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthenticated):
		l.Warn("request rejected", "status", 401)
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	case errors.Is(err, service.ErrItemNotFound):
		l.Warn("request rejected", "status", 404, "error", err)
		return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
	case errors.Is(err, service.ErrNotInCart):
		l.Warn("request rejected", "status", 404, "error", err)
		return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found in cart"})
	default:
		l.Error("request failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
