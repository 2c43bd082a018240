package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func gateContext(t *testing.T, userID uint64, isAdmin bool, paramID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxUserID, userID)
	c.Set(CtxIsAdmin, isAdmin)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	return c, rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireAdminAllowsAdmin(t *testing.T) {
	c, rec := gateContext(t, 1, true, "")
	require.NoError(t, RequireAdmin()(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	c, rec := gateContext(t, 1, false, "")
	require.NoError(t, RequireAdmin()(okHandler)(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"message":"Admin authentication required"}`, rec.Body.String())
}

func TestRequireAdminRejectsMissingIdentity(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	rec := c.Response().Writer.(*httptest.ResponseRecorder)
	require.NoError(t, RequireAdmin()(okHandler)(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireSelfOrAdmin(t *testing.T) {
	// Owner acting on their own record.
	c, rec := gateContext(t, 7, false, "7")
	require.NoError(t, RequireSelfOrAdmin("id")(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Admin acting on someone else's record.
	c, rec = gateContext(t, 1, true, "7")
	require.NoError(t, RequireSelfOrAdmin("id")(okHandler)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// Non-admin acting on someone else's record.
	c, rec = gateContext(t, 2, false, "7")
	require.NoError(t, RequireSelfOrAdmin("id")(okHandler)(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"message":"Admin authentication required"}`, rec.Body.String())
}
