package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/checkout"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service/order"
	"github.com/Skotchmaster/storefront/internal/storefront"
)

// SessionSource hands out the live session of a shopper.
type SessionSource interface {
	Get(shopperID string) *storefront.Session
}

// httpError maps domain errors onto echo errors. Errors it does not know
// become a 500.
func httpError(err error) error {
	if err == nil {
		return nil
	}

	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, echo.Map{
			"status":  "error",
			"message": verr.Error(),
			"step":    verr.Step,
			"fields":  verr.Fields,
		})
	}

	var perr *checkout.PlacementError
	if errors.As(err, &perr) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, echo.Map{
			"status":    "error",
			"message":   perr.Error(),
			"retryable": perr.Retryable(),
			"timeout":   perr.Timeout(),
		}).SetInternal(err)
	}

	switch {
	case errors.Is(err, cart.ErrUnknownProduct),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, repo.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNotReviewed),
		errors.Is(err, checkout.ErrSubmissionInProgress),
		errors.Is(err, checkout.ErrNoNextStep),
		errors.Is(err, checkout.ErrStepLocked),
		errors.Is(err, repo.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, cart.ErrUnknownCommand),
		errors.Is(err, order.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}
