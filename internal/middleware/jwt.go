package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/utils"
)

// AccessTokenCookie is the name of the cookie carrying the access token.
// The login handler sets it HttpOnly; browser clients never touch the token
// directly.
const AccessTokenCookie = "access_token"

// Context keys under which the authenticated identity is stored. Handlers
// read these via c.Get().
const (
	CtxUserID  = "user_id"
	CtxIsAdmin = "is_admin"
)

// JWTAuth returns an Echo middleware that authenticates a request from the
// access-token cookie or an Authorization bearer header. The cookie takes
// precedence when both are present. A missing, malformed or expired token
// fails the request with 401 and the documented message; on success the
// decoded identity is placed on the request context for downstream
// handlers and gates.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "You are not authenticated"})
			}
			id, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "You are not authenticated"})
			}
			c.Set(CtxUserID, id.UserID)
			c.Set(CtxIsAdmin, id.IsAdmin)
			return next(c)
		}
	}
}

// tokenFromRequest extracts the raw token, cookie first, then bearer header.
func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(AccessTokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
