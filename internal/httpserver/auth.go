package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ndemidov/storefront/internal/logging"
	"github.com/ndemidov/storefront/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	if req.Name == "" || !strings.Contains(req.Email, "@") || len(req.Password) < 6 {
		l.Warn("register_error", "status", 400)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name, email and a password of at least 6 characters are required"})
	}

	user, token, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	user, token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}
