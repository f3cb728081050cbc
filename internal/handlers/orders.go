package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/shopper"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

type OrderHistory interface {
	ListOrders(ctx context.Context, shopperID string, status models.OrderStatus, limit, offset int) (int64, []models.Order, error)
	GetOrder(ctx context.Context, shopperID, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error)
}

type OrderHandler struct {
	Orders OrderHistory
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	status := models.OrderStatus(c.QueryParam("status"))
	if status == "all" {
		status = ""
	}
	page, size, from := util.Page(c.QueryParam("page"), c.QueryParam("size"))

	total, orders, err := h.Orders.ListOrders(c.Request().Context(), shopper.ID(c), status, size, from)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total":  total,
		"page":   page,
		"size":   size,
		"orders": orders,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	o, err := h.Orders.GetOrder(c.Request().Context(), shopper.ID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

// UpdateStatus moves an order along its lifecycle. Admin only.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.order_status")

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	o, err := h.Orders.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		l.Warn("order_status_rejected", "order_id", c.Param("id"), "status", req.Status, "error", err)
		return httpError(err)
	}
	l.Info("order_status_updated", "order_id", o.ID, "status", o.Status)
	return c.JSON(http.StatusOK, o)
}
