package httpserver

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ndemidov/storefront/internal/logging"
	"github.com/ndemidov/storefront/internal/repo"
	"github.com/ndemidov/storefront/internal/service"
	"github.com/ndemidov/storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (h *CatalogHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_item")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
	}

	item, err := h.Svc.GetItem(ctx, id)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_items")

	filter := repo.ItemFilter{
		Category: c.QueryParam("category"),
		MinPrice: parseFloat(c.QueryParam("min_price")),
		MaxPrice: parseFloat(c.QueryParam("max_price")),
		Search:   c.QueryParam("search"),
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListItems(ctx, filter, offset, limit)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_item")

	var req service.ItemInput
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	item, err := h.Svc.CreateItem(ctx, req)
	if err != nil {
		return respondError(c, l, err)
	}

	return c.JSON(http.StatusCreated, item)
}
