package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware that only lets admin identities
// through. It assumes JWTAuth already ran and stored the admin flag in the
// context; anything else is rejected with 403 and the documented message.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isAdmin, ok := c.Get(CtxIsAdmin).(bool); !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Admin authentication required"})
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin returns a middleware enforcing the self-or-admin
// policy on user resources: the request passes when the path parameter
// named by param equals the authenticated user id, or when the identity is
// an admin. Everything else is rejected with 403.
func RequireSelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get(CtxIsAdmin).(bool)
			if isAdmin {
				return next(c)
			}
			uid, ok := c.Get(CtxUserID).(uint64)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Admin authentication required"})
			}
			target, err := strconv.ParseUint(c.Param(param), 10, 64)
			if err != nil || target != uid {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Admin authentication required"})
			}
			return next(c)
		}
	}
}
