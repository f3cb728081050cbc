package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(DefaultConfig()))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/api/v1/cart", ok)
	e.POST("/api/v1/cart", ok)
	e.GET("/health/live", ok)
	return e
}

func fetchToken(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "XSRF-TOKEN", cookies[0].Name)
	require.Equal(t, cookies[0].Value, rec.Header().Get("X-CSRF-Token"))
	return cookies[0]
}

func post(e *echo.Echo, ck *http.Cookie, token, origin string) int {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/cart", nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	if token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestMiddleware_DoubleSubmit(t *testing.T) {
	t.Parallel()

	e := newEcho()
	ck := fetchToken(t, e)

	assert.Equal(t, http.StatusOK, post(e, ck, ck.Value, "http://example.com"))
	assert.Equal(t, http.StatusForbidden, post(e, ck, "", "http://example.com"))
	assert.Equal(t, http.StatusForbidden, post(e, ck, "forged", "http://example.com"))
	assert.Equal(t, http.StatusForbidden, post(e, nil, ck.Value, "http://example.com"))
}

func TestMiddleware_SameOrigin(t *testing.T) {
	t.Parallel()

	e := newEcho()
	ck := fetchToken(t, e)

	assert.Equal(t, http.StatusForbidden, post(e, ck, ck.Value, "http://evil.example"))
	assert.Equal(t, http.StatusForbidden, post(e, ck, ck.Value, ""))
}

func TestMiddleware_SkipPaths(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newEcho().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}
