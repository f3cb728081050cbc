package shopper

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/auth"
	"github.com/Skotchmaster/storefront/internal/logging"
)

const (
	GuestCookie = "shopper_id"

	ctxShopperID = "shopper_id"
	ctxUser      = "user"

	guestCookieTTL = 30 * 24 * time.Hour
)

// Identify works out who is shopping. A valid access token wins; otherwise
// the shopper is a guest tracked by a shopper_id cookie, issued on first
// contact.
func Identify(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := fromToken(c, jwtSecret)
			if user == nil {
				user = guest(c)
			}

			c.Set(ctxShopperID, user.ID)
			c.Set(ctxUser, *user)

			ctx := logging.WithAttrs(c.Request().Context(), "shopper_id", user.ID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func fromToken(c echo.Context, secret []byte) *auth.User {
	if len(secret) == 0 {
		return nil
	}
	ck, err := c.Cookie(auth.AccessCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	claims, err := auth.AccessClaimsFromToken(ck.Value, secret)
	if err != nil || claims.Subject == "" {
		logging.FromContext(c.Request().Context()).Debug("access_token_ignored", "error", err)
		return nil
	}
	return &auth.User{
		ID:       "user:" + claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}
}

func guest(c echo.Context) *auth.User {
	if ck, err := c.Cookie(GuestCookie); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil {
			return &auth.User{ID: "guest:" + id.String(), Guest: true}
		}
	}

	id := uuid.New()
	c.SetCookie(&http.Cookie{
		Name:     GuestCookie,
		Value:    id.String(),
		Path:     "/",
		Expires:  time.Now().Add(guestCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return &auth.User{ID: "guest:" + id.String(), Guest: true}
}

// RequireAdmin rejects anyone who is not an authenticated admin.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentUser(c).IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func ID(c echo.Context) string {
	id, _ := c.Get(ctxShopperID).(string)
	return id
}

func CurrentUser(c echo.Context) auth.User {
	u, ok := c.Get(ctxUser).(auth.User)
	if !ok {
		return auth.User{Guest: true}
	}
	return u
}
