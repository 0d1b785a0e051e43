package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndemidov/storefront/internal/middleware"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	AuthMW         *middleware.Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	items := api.Group("/items")
	items.GET("", d.CatalogHandler.ListItems)
	items.GET("/:id", d.CatalogHandler.GetItem)
	items.POST("", d.CatalogHandler.CreateItem)

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}

	cart := api.Group("/cart", d.AuthMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.PUT("/update", d.CartHandler.UpdateCart)
	cart.DELETE("/remove/:itemId", d.CartHandler.RemoveFromCart)
}
