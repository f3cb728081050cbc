package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/shopper"
	"github.com/Skotchmaster/storefront/internal/storefront"
)

type CartHandler struct {
	Sessions  SessionSource
	Publisher events.Publisher
}

type commandRequest struct {
	Type      string `json:"type"`
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (r commandRequest) command() (cart.Command, error) {
	switch r.Type {
	case "add_to_cart":
		return cart.AddToCart{ProductID: r.ProductID, Quantity: r.Quantity}, nil
	case "set_quantity":
		return cart.SetQuantity{ProductID: r.ProductID, Quantity: r.Quantity}, nil
	case "clear_cart":
		return cart.ClearCart{}, nil
	}
	return nil, echo.NewHTTPError(http.StatusBadRequest, "unknown command type: "+r.Type)
}

func (h *CartHandler) session(c echo.Context) *storefront.Session {
	return h.Sessions.Get(shopper.ID(c))
}

func (h *CartHandler) publish(c echo.Context, cmd cart.Command, productID int, view storefront.CartView) {
	if h.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := shopper.ID(c)
	env := events.New(events.CartUpdated, id, events.CartUpdatedPayload{
		ShopperID:     id,
		Command:       cart.Name(cmd),
		ProductID:     productID,
		LineCount:     view.LineCount,
		TotalQuantity: view.TotalQuantity,
	})
	if err := h.Publisher.PublishEvent(ctx, events.TopicCart, id, env); err != nil {
		logging.FromContext(ctx).Error("cart_event_publish_error", "error", err)
	}
}

func (h *CartHandler) dispatch(c echo.Context, cmd cart.Command, productID int) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart."+cart.Name(cmd))

	sess := h.session(c)
	if err := sess.Dispatch(ctx, cmd); err != nil {
		l.Warn("cart_command_rejected", "product_id", productID, "error", err)
		return httpError(err)
	}

	view := sess.Cart()
	l.Info("cart_updated", "product_id", productID, "line_count", view.LineCount, "total_quantity", view.TotalQuantity)
	h.publish(c, cmd, productID, view)
	return c.JSON(http.StatusOK, view)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session(c).Cart())
}

// Badge is the header cart count: the sum of all quantities.
func (h *CartHandler) Badge(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"count": h.session(c).TotalQuantity()})
}

func (h *CartHandler) Command(c echo.Context) error {
	var req commandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	cmd, err := req.command()
	if err != nil {
		return err
	}
	return h.dispatch(c, cmd, req.ProductID)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID int `json:"product_id"`
		Quantity  int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Quantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be positive")
	}
	return h.dispatch(c, cart.AddToCart{ProductID: req.ProductID, Quantity: req.Quantity}, req.ProductID)
}

func (h *CartHandler) SetQuantity(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity required")
	}
	return h.dispatch(c, cart.SetQuantity{ProductID: id, Quantity: *req.Quantity}, id)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	return h.dispatch(c, cart.SetQuantity{ProductID: id, Quantity: 0}, id)
}

func (h *CartHandler) Clear(c echo.Context) error {
	return h.dispatch(c, cart.ClearCart{}, 0)
}
