package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// RoomHandler bundles the room repository for room endpoints. All mutating
// handlers are mounted behind the JWT + admin middleware.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: rooms}
}

// CreateRoom handles POST /api/rooms/:hotelId (admin). The room and the
// parent hotel's membership entry are written in one transaction by the
// repository. Malformed fields fail with 400 and the full violation list.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hotel id"})
	}
	var room model.Room
	if err := c.Bind(&room); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if violations := validateRoomInput(&room); len(violations) > 0 {
		return validationFailed(c, violations)
	}
	if err := h.Rooms.Create(c.Request().Context(), hotelID, &room); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "create room failed"})
	}
	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/rooms/:id (admin) with a partial patch.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var patch repository.RoomPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	updated, err := h.Rooms.Update(c.Request().Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateRoomAvailability handles PUT /api/rooms/availability/:id (admin).
// Dates are validated as YYYY-MM-DD, deduplicated by the repository, and a
// best-effort room.booked event is published after a successful write.
func (h *RoomHandler) UpdateRoomAvailability(c echo.Context) error {
	roomNumberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var body struct {
		Dates []string `json:"dates"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	violations := make([]string, 0, len(body.Dates))
	if len(body.Dates) == 0 {
		violations = append(violations, "dates is required")
	}
	for _, d := range body.Dates {
		if !validDate(d) {
			violations = append(violations, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", d))
		}
	}
	if len(violations) > 0 {
		return validationFailed(c, violations)
	}

	if err := h.Rooms.UpdateAvailability(c.Request().Context(), roomNumberID, body.Dates); err != nil {
		if errors.Is(err, repository.ErrRoomNumberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Room number not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "update failed"})
	}

	userID, _ := getUserID(c)
	_ = service.PublishRoomBooked(c.Request().Context(), queue.RoomBookedEvent{
		RoomNumberID: roomNumberID,
		Dates:        repository.DedupDates(body.Dates),
		BookedBy:     userID,
		BookedAt:     time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Room status has been updated"})
}

// DeleteRoom handles DELETE /api/rooms/:id/:hotelId (admin). The repository
// removes the room and the hotel's reference in one transaction so callers
// never see one side without the other.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid hotel id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), roomID, hotelID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Room has been deleted"})
}

// GetRoom handles GET /api/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, room)
}

// GetRooms handles GET /api/rooms and returns every room.
func (h *RoomHandler) GetRooms(c echo.Context) error {
	rooms, err := h.Rooms.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "db error"})
	}
	return c.JSON(http.StatusOK, rooms)
}

// validateRoomInput collects the field violations for a room create.
func validateRoomInput(r *model.Room) []string {
	violations := make([]string, 0, 3)
	if strings.TrimSpace(r.Title) == "" {
		violations = append(violations, "title is required")
	}
	if r.Price <= 0 {
		violations = append(violations, "price must be greater than zero")
	}
	if r.MaxPeople <= 0 {
		violations = append(violations, "maxPeople must be greater than zero")
	}
	for i, n := range r.RoomNumbers {
		if n.Number <= 0 {
			violations = append(violations, fmt.Sprintf("roomNumbers[%d].number must be greater than zero", i))
		}
	}
	return violations
}
