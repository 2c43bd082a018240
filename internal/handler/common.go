package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// dateLayout is the wire format for booking dates.
const dateLayout = "2006-01-02"

// getUserID extracts the authenticated user id placed in the context by the
// JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok {
		return id, nil
	}
	return 0, errors.New("no user in context")
}

// validationFailed writes the single 400 response used for all input
// validation failures: one message plus the list of field violations.
func validationFailed(c echo.Context, violations []string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": "validation failed",
		"errors":  violations,
	})
}

// validDate reports whether s is a well-formed YYYY-MM-DD date.
func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
