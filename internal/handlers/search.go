package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service/search"
	"github.com/Skotchmaster/storefront/internal/util"
)

type SearchHandler struct {
	Engine search.Engine
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page, size, from := util.Page(c.QueryParam("page"), c.QueryParam("size"))
	ctx := c.Request().Context()

	total, products, err := h.Engine.Search(ctx, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search_error", "handler", "catalog.search", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"page":     page,
		"size":     size,
		"products": viewProducts(products),
	})
}
