package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// HotelHandler bundles the hotel repository for hotel endpoints. Mutating
// handlers are mounted behind the JWT + admin middleware; the read handlers
// are public.
type HotelHandler struct {
	Hotels *repository.HotelRepo
}

func NewHotelHandler(hotels *repository.HotelRepo) *HotelHandler {
	return &HotelHandler{Hotels: hotels}
}

// CreateHotel handles POST /api/hotels (admin). Required fields are
// validated up front and all violations are reported together.
func (h *HotelHandler) CreateHotel(c echo.Context) error {
	var hotel model.Hotel
	if err := c.Bind(&hotel); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if violations := validateHotelInput(&hotel); len(violations) > 0 {
		return validationFailed(c, violations)
	}
	if err := h.Hotels.Create(c.Request().Context(), &hotel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create hotel failed"})
	}
	return c.JSON(http.StatusCreated, hotel)
}

// UpdateHotel handles PUT /api/hotels/:id (admin) with a partial patch.
func (h *HotelHandler) UpdateHotel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var patch repository.HotelPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	updated, err := h.Hotels.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteHotel handles DELETE /api/hotels/:id (admin). The response is a
// plain confirmation, not a representation of the deleted entity.
func (h *HotelHandler) DeleteHotel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Hotels.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Hotel has been deleted"})
}

// GetHotel handles GET /api/hotels/find/:id.
func (h *HotelHandler) GetHotel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, hotel)
}

// GetHotels handles GET /api/hotels with optional query filters
// (city, type, featured, min, max, limit). No filters returns all hotels.
func (h *HotelHandler) GetHotels(c echo.Context) error {
	f := repository.HotelFilter{
		City: c.QueryParam("city"),
		Type: c.QueryParam("type"),
	}
	if v := c.QueryParam("min"); v != "" {
		f.MinPrice, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("max"); v != "" {
		f.MaxPrice, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("featured"); v != "" {
		featured := v == "true"
		f.Featured = &featured
	}
	if v := c.QueryParam("limit"); v != "" {
		f.Limit, _ = strconv.Atoi(v)
	}
	hotels, err := h.Hotels.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, hotels)
}

// CountByCity handles GET /api/hotels/countByCity?cities=A,B. The response
// is one count per requested city, in request order, zeros included.
func (h *HotelHandler) CountByCity(c echo.Context) error {
	raw := c.QueryParam("cities")
	if strings.TrimSpace(raw) == "" {
		return validationFailed(c, []string{"cities query parameter is required"})
	}
	cities := strings.Split(raw, ",")
	for i := range cities {
		cities[i] = strings.TrimSpace(cities[i])
	}
	counts, err := h.Hotels.CountByCity(c.Request().Context(), cities)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, counts)
}

// CountByType handles GET /api/hotels/countByType. Exactly one bucket per
// canonical lodging type is returned regardless of the data present.
func (h *HotelHandler) CountByType(c echo.Context) error {
	counts, err := h.Hotels.CountByType(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, counts)
}

// GetHotelRooms handles GET /api/hotels/room/:id and resolves the hotel's
// room references into full room records.
func (h *HotelHandler) GetHotelRooms(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rooms, err := h.Hotels.GetRooms(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// validateHotelInput collects the required-field violations for a create.
func validateHotelInput(h *model.Hotel) []string {
	violations := make([]string, 0, 7)
	if strings.TrimSpace(h.Name) == "" {
		violations = append(violations, "name is required")
	}
	if strings.TrimSpace(h.Type) == "" {
		violations = append(violations, "type is required")
	}
	if strings.TrimSpace(h.City) == "" {
		violations = append(violations, "city is required")
	}
	if strings.TrimSpace(h.Address) == "" {
		violations = append(violations, "address is required")
	}
	if strings.TrimSpace(h.Title) == "" {
		violations = append(violations, "title is required")
	}
	if strings.TrimSpace(h.Description) == "" {
		violations = append(violations, "desc is required")
	}
	if h.CheapestPrice <= 0 {
		violations = append(violations, "cheapestPrice must be greater than zero")
	}
	return violations
}
