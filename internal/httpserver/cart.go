package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ndemidov/storefront/internal/logging"
	"github.com/ndemidov/storefront/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

// boundUserID reads the user id the auth gate bound into the request
// scope. Cart handlers never trust an id from the request payload.
func boundUserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get("user_id").(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, errors.New("no bound user id")
	}
	return id, nil
}

type cartLineRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := boundUserID(c)
	if err != nil {
		l.Error("get_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	lines, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := boundUserID(c)
	if err != nil {
		l.Error("add_to_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req cartLineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.ItemID == uuid.Nil {
		l.Warn("add_to_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "item_id required"})
	}

	lines, err := h.Svc.Add(ctx, userID, req.ItemID, req.Quantity)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := boundUserID(c)
	if err != nil {
		l.Error("update_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	var req cartLineRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.ItemID == uuid.Nil {
		l.Warn("update_cart_error", "status", 400)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "item_id required"})
	}

	lines, err := h.Svc.Update(ctx, userID, req.ItemID, req.Quantity)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := boundUserID(c)
	if err != nil {
		l.Error("remove_from_cart_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
	}

	lines, err := h.Svc.Remove(ctx, userID, itemID)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, lines)
}
