package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/middleware/shopper"
)

// Me returns who is shopping together with the header cart count.
func (h *CartHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user":       shopper.CurrentUser(c),
		"cart_count": h.session(c).TotalQuantity(),
	})
}
