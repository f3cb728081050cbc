package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/checkout"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/shopper"
	"github.com/Skotchmaster/storefront/internal/storefront"
)

type CheckoutHandler struct {
	Sessions SessionSource
}

type paymentRequest struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
	CardName   string `json:"card_name"`
}

func (h *CheckoutHandler) session(c echo.Context) *storefront.Session {
	return h.Sessions.Get(shopper.ID(c))
}

func (h *CheckoutHandler) GetCheckout(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session(c).Checkout())
}

func (h *CheckoutHandler) PutShipping(c echo.Context) error {
	var req checkout.Shipping
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sess := h.session(c)
	if err := sess.SetShipping(req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sess.Checkout())
}

func (h *CheckoutHandler) PutPayment(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sess := h.session(c)
	err := sess.SetPayment(checkout.Payment{
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
		CardName:   req.CardName,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sess.Checkout())
}

func (h *CheckoutHandler) PutNotes(c echo.Context) error {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	sess := h.session(c)
	if err := sess.SetNotes(req.Notes); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sess.Checkout())
}

func (h *CheckoutHandler) Next(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "checkout.next")

	sess := h.session(c)
	step, err := sess.Next()
	if err != nil {
		l.Info("checkout_step_blocked", "step", step, "error", err)
		return httpError(err)
	}
	l.Info("checkout_step_advanced", "step", step)
	return c.JSON(http.StatusOK, sess.Checkout())
}

func (h *CheckoutHandler) Back(c echo.Context) error {
	sess := h.session(c)
	if _, err := sess.Back(); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sess.Checkout())
}

func (h *CheckoutHandler) Review(c echo.Context) error {
	summary, err := h.session(c).Review()
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// Submit places the order. On success the response names the page the
// shopper should be taken to; on failure cart and form are kept so the same
// submission can be retried.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.submit")

	var navigateTo string
	nav := checkout.NavigatorFunc(func(path string) { navigateTo = path })

	order, err := h.session(c).Submit(ctx, nav)
	if err != nil {
		l.Warn("order_submit_failed", "error", err)
		return httpError(err)
	}

	l.Info("order_submitted", "order_id", order.ID, "total", order.Total.StringFixed(2), "status", order.Status)
	return c.JSON(http.StatusCreated, echo.Map{
		"order":       order,
		"navigate_to": navigateTo,
	})
}

func (h *CheckoutHandler) Abandon(c echo.Context) error {
	if err := h.session(c).Abandon(); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
