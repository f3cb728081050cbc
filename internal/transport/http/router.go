package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	"github.com/Skotchmaster/storefront/internal/middleware/shopper"
)

type Deps struct {
	DB        *gorm.DB
	JWTSecret []byte
	// CSRF enables the double-submit guard on /api/v1 when set.
	CSRF *csrf.Config

	CatalogHandler  *handlers.CatalogHandler
	SearchHandler   *handlers.SearchHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	OrderHandler    *handlers.OrderHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB == nil {
			return c.NoContent(http.StatusOK)
		}
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	mw := []echo.MiddlewareFunc{shopper.Identify(d.JWTSecret)}
	if d.CSRF != nil {
		mw = append(mw, csrf.Middleware(*d.CSRF))
	}
	v1 := e.Group("/api/v1", mw...)

	v1.GET("/search", d.SearchHandler.Search)
	v1.GET("/categories", d.CatalogHandler.GetCategories)
	v1.GET("/me", d.CartHandler.Me)

	products := v1.Group("/products")

	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.GET("", d.CatalogHandler.GetProducts)

	cart := v1.Group("/cart")

	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.Clear)
	cart.GET("/badge", d.CartHandler.Badge)
	cart.POST("/commands", d.CartHandler.Command)
	cart.PATCH("/items/:id", d.CartHandler.SetQuantity)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)

	co := v1.Group("/checkout")

	co.GET("", d.CheckoutHandler.GetCheckout)
	co.DELETE("", d.CheckoutHandler.Abandon)
	co.PUT("/shipping", d.CheckoutHandler.PutShipping)
	co.PUT("/payment", d.CheckoutHandler.PutPayment)
	co.PUT("/notes", d.CheckoutHandler.PutNotes)
	co.POST("/next", d.CheckoutHandler.Next)
	co.POST("/back", d.CheckoutHandler.Back)
	co.GET("/review", d.CheckoutHandler.Review)
	co.POST("/submit", d.CheckoutHandler.Submit)

	orders := v1.Group("/orders")

	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	admin := v1.Group("/admin", shopper.RequireAdmin)

	admin.PATCH("/orders/:id", d.OrderHandler.UpdateStatus)
}
