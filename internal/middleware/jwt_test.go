package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/utils"
)

const testSecret = "test-secret"

// runAuth pushes a request through JWTAuth into a probe handler that
// records the identity it finds in the context.
func runAuth(t *testing.T, mutate func(*http.Request)) (*httptest.ResponseRecorder, *echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mutate(req)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen echo.Context
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		seen = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, &seen
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runAuth(t, func(*http.Request) {})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"You are not authenticated"}`, rec.Body.String())
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec, _ := runAuth(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"You are not authenticated"}`, rec.Body.String())
}

func TestJWTAuthValidCookie(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 9, true, 1)
	require.NoError(t, err)

	rec, seen := runAuth(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tok.Token})
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint64(9), (*seen).Get(CtxUserID))
	require.Equal(t, true, (*seen).Get(CtxIsAdmin))
}

func TestJWTAuthBearerHeader(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 5, false, 1)
	require.NoError(t, err)

	rec, seen := runAuth(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint64(5), (*seen).Get(CtxUserID))
	require.Equal(t, false, (*seen).Get(CtxIsAdmin))
}

func TestJWTAuthCookieTakesPrecedence(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 3, false, 1)
	require.NoError(t, err)

	// Valid cookie + garbage header: cookie wins, request passes.
	rec, seen := runAuth(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tok.Token})
		r.Header.Set("Authorization", "Bearer garbage")
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint64(3), (*seen).Get(CtxUserID))

	// Garbage cookie + valid header: cookie still wins, request fails.
	rec, _ = runAuth(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
