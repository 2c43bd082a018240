package handler_test

// DB-backed tests for the full HTTP surface. They run against a throwaway
// MySQL database given by HOTEL_TEST_DSN (the DSN must carry
// parseTime=true) and are skipped when it is not set. Requests go through the real router so the JWT and admin gates are
// exercised exactly as in production; Redis is nil so cache and rate
// limiting are pass-through.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
)

type testEnv struct {
	T *testing.T
	E *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := os.Getenv("HOTEL_TEST_DSN")
	if dsn == "" {
		t.Skip("HOTEL_TEST_DSN not set; skipping DB-backed handler tests")
	}
	db, err := database.OpenDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	// Start from an empty store, child tables first.
	for _, tbl := range []string{
		"room_unavailable_dates", "room_numbers", "hotel_rooms", "rooms", "hotels", "users",
	} {
		_, err := db.Exec("DELETE FROM " + tbl)
		require.NoError(t, err)
	}

	cfg := config.Config{
		Env:           "test",
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		BcryptCost:    bcrypt.MinCost,
	}
	users := repository.NewUserRepo(db)
	e := echo.New()
	router.RegisterRoutes(e, router.Deps{
		Cfg:    cfg,
		Auth:   handler.NewAuthHandler(cfg, users),
		Hotels: handler.NewHotelHandler(repository.NewHotelRepo(db)),
		Rooms:  handler.NewRoomHandler(repository.NewRoomRepo(db)),
		Users:  handler.NewUserHandler(cfg, users),
	})
	t.Cleanup(func() { _ = db.Close() })
	return &testEnv{T: t, E: e}
}

func (env *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// login registers (ignoring an already-exists failure) and logs in,
// returning the access-token cookie the server set.
func (env *testEnv) login(username string, isAdmin bool) *http.Cookie {
	env.T.Helper()
	env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "TestPass123",
		"isAdmin":  isAdmin,
	})
	rec := env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": username,
		"password": "TestPass123",
	})
	require.Equal(env.T, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "access_token" {
			require.NotEmpty(env.T, ck.Value)
			return ck
		}
	}
	env.T.Fatal("login response did not set access_token cookie")
	return nil
}

func (env *testEnv) createHotel(admin *http.Cookie, name, city, hotelType string) model.Hotel {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/api/hotels", map[string]any{
		"name":          name,
		"type":          hotelType,
		"city":          city,
		"address":       "123 Main St",
		"distance":      "500m from center",
		"title":         name + " Title",
		"desc":          "Description of " + name,
		"cheapestPrice": 100,
	}, admin)
	require.Equal(env.T, http.StatusCreated, rec.Code)
	var h model.Hotel
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &h))
	require.NotZero(env.T, h.ID)
	return h
}

func (env *testEnv) createRoom(admin *http.Cookie, hotelID uint64, title string, numbers ...int) model.Room {
	env.T.Helper()
	nums := make([]map[string]any, 0, len(numbers))
	for _, n := range numbers {
		nums = append(nums, map[string]any{"number": n})
	}
	rec := env.do(http.MethodPost, fmt.Sprintf("/api/rooms/%d", hotelID), map[string]any{
		"title":       title,
		"desc":        "A test room description",
		"price":       200,
		"maxPeople":   2,
		"roomNumbers": nums,
	}, admin)
	require.Equal(env.T, http.StatusCreated, rec.Code)
	var room model.Room
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &room))
	require.NotZero(env.T, room.ID)
	return room
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{
		"username": "dupuser",
		"email":    "dup@example.com",
		"password": "TestPass123",
	}
	rec := env.do(http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "already exists")
}

func TestLoginFlows(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/auth/register", map[string]any{
		"username": "loginuser",
		"email":    "login@example.com",
		"password": "TestPass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Correct credentials: 200, token cookie usable on a protected route.
	ck := env.login("loginuser", false)
	rec = env.do(http.MethodGet, "/api/users", nil, ck)
	require.Equal(t, http.StatusForbidden, rec.Code) // authenticated but not admin

	// Wrong password: 400.
	rec = env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "loginuser",
		"password": "WrongPass123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown username: 404.
	rec = env.do(http.MethodPost, "/api/auth/login", map[string]any{
		"username": "nosuchuser",
		"password": "TestPass123",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHotelNotFoundContract(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login("admin", true)

	rec := env.do(http.MethodGet, "/api/hotels/find/999999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Hotel not found"}`, rec.Body.String())

	rec = env.do(http.MethodPut, "/api/hotels/999999", map[string]any{"name": "X"}, admin)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Hotel not found"}`, rec.Body.String())

	rec = env.do(http.MethodDelete, "/api/hotels/999999", nil, admin)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Hotel not found"}`, rec.Body.String())
}

func TestCountByCity(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login("admin", true)

	env.createHotel(admin, "Alpha One", "Aville", "hotel")
	env.createHotel(admin, "Alpha Two", "Aville", "resort")
	env.createHotel(admin, "Beta One", "Bville", "hotel")

	rec := env.do(http.MethodGet, "/api/hotels/countByCity?cities=Aville,Bville,Cville", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var counts []int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	require.Equal(t, []int64{2, 1, 0}, counts)
}

func TestCountByTypeAlwaysFiveBuckets(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/hotels/countByType", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counts []model.TypeCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	require.Len(t, counts, 5)
	for _, tc := range counts {
		require.Zero(t, tc.Count)
	}

	admin := env.login("admin", true)
	env.createHotel(admin, "Palm Resort", "Aville", "resort")

	rec = env.do(http.MethodGet, "/api/hotels/countByType", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	counts = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	require.Len(t, counts, 5)
	byType := map[string]int64{}
	for _, tc := range counts {
		byType[tc.Type] = tc.Count
	}
	require.Equal(t, int64(1), byType["resort"])
	require.Equal(t, int64(0), byType["cabin"])
}

func TestHotelRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login("admin", true)

	created := env.createHotel(admin, "Round Trip", "Aville", "hotel")

	rec := env.do(http.MethodGet, fmt.Sprintf("/api/hotels/find/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Hotel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Round Trip", got.Name)
	require.Equal(t, "hotel", got.Type)
	require.Equal(t, "Aville", got.City)
	require.Equal(t, "123 Main St", got.Address)
	require.Equal(t, "Description of Round Trip", got.Description)
	require.Equal(t, 100, got.CheapestPrice)
	require.Empty(t, got.Rooms)
}

func TestRoomLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login("admin", true)
	hotel := env.createHotel(admin, "Room Host", "Aville", "hotel")

	first := env.createRoom(admin, hotel.ID, "First Room", 101, 102)
	second := env.createRoom(admin, hotel.ID, "Second Room", 201)

	// getRooms returns exactly the created rooms in creation order.
	rec := env.do(http.MethodGet, fmt.Sprintf("/api/hotels/room/%d", hotel.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rooms []model.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rooms))
	require.Len(t, rooms, 2)
	require.Equal(t, first.ID, rooms[0].ID)
	require.Equal(t, second.ID, rooms[1].ID)

	// Availability update dedups by exact date.
	numberID := first.RoomNumbers[0].ID
	rec = env.do(http.MethodPut, fmt.Sprintf("/api/rooms/availability/%d", numberID), map[string]any{
		"dates": []string{"2024-07-01", "2024-07-02", "2024-07-01"},
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	// Booking the same date again is a no-op.
	rec = env.do(http.MethodPut, fmt.Sprintf("/api/rooms/availability/%d", numberID), map[string]any{
		"dates": []string{"2024-07-02"},
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/rooms/%d", first.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"2024-07-01", "2024-07-02"}, got.RoomNumbers[0].UnavailableDates)

	// Unknown room number id.
	rec = env.do(http.MethodPut, "/api/rooms/availability/999999", map[string]any{
		"dates": []string{"2024-07-01"},
	}, admin)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting a room removes it from both the room collection and the
	// hotel's reference list.
	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/rooms/%d/%d", first.ID, hotel.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/rooms/%d", first.ID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, fmt.Sprintf("/api/hotels/find/%d", hotel.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after model.Hotel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	require.Equal(t, []uint64{second.ID}, after.Rooms)
}

func TestRoomValidationReturns400(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login("admin", true)
	hotel := env.createHotel(admin, "Strict Host", "Aville", "hotel")

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/rooms/%d", hotel.ID), map[string]any{
		"desc":        "no title, bad price",
		"price":       0,
		"maxPeople":   0,
		"roomNumbers": []map[string]any{{"number": 0}},
	}, admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "validation failed", body.Message)
	require.Len(t, body.Errors, 4)
}

func TestAdminGateRejectsWithoutSideEffects(t *testing.T) {
	env := newTestEnv(t)
	user := env.login("regular", false)

	body := map[string]any{
		"name":          "Sneaky Hotel",
		"type":          "hotel",
		"city":          "Aville",
		"address":       "123 Main St",
		"title":         "Sneaky",
		"desc":          "should never be stored",
		"cheapestPrice": 100,
	}

	// No token at all.
	rec := env.do(http.MethodPost, "/api/hotels", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"You are not authenticated"}`, rec.Body.String())

	// Authenticated but not admin.
	rec = env.do(http.MethodPost, "/api/hotels", body, user)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"message":"Admin authentication required"}`, rec.Body.String())

	// The store is unchanged.
	rec = env.do(http.MethodGet, "/api/hotels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestUserSelfOrAdminPolicy(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login("admin", true)
	userCk := env.login("selfuser", false)

	// Find the user's own id via the admin list.
	rec := env.do(http.MethodGet, "/api/users", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	var selfID uint64
	for _, u := range users {
		if u.Username == "selfuser" {
			selfID = u.ID
		}
	}
	require.NotZero(t, selfID)

	// Owner reads own record.
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", selfID), nil, userCk)
	require.Equal(t, http.StatusOK, rec.Code)

	// Owner cannot read someone else's record; admin can.
	var otherID uint64
	for _, u := range users {
		if u.Username == "admin" {
			otherID = u.ID
		}
	}
	require.NotZero(t, otherID)
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", otherID), nil, userCk)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", otherID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	// Owner updates own record; the response reflects the change.
	rec = env.do(http.MethodPut, fmt.Sprintf("/api/users/%d", selfID), map[string]any{
		"email": "renamed@example.com",
	}, userCk)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "renamed@example.com", updated.Email)

	// Owner deletes own record.
	rec = env.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", selfID), nil, userCk)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(http.MethodGet, fmt.Sprintf("/api/users/%d", selfID), nil, admin)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHotelListFilters(t *testing.T) {
	env := newTestEnv(t)
	admin := env.login("admin", true)

	env.createHotel(admin, "City Hotel", "Aville", "hotel")
	env.createHotel(admin, "Beach Resort", "Bville", "resort")

	rec := env.do(http.MethodGet, "/api/hotels?city=Aville", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var hotels []model.Hotel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hotels))
	require.Len(t, hotels, 1)
	require.Equal(t, "City Hotel", hotels[0].Name)

	rec = env.do(http.MethodGet, "/api/hotels?type=resort", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hotels = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hotels))
	require.Len(t, hotels, 1)
	require.Equal(t, "Beach Resort", hotels[0].Name)

	rec = env.do(http.MethodGet, "/api/hotels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hotels = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hotels))
	require.Len(t, hotels, 2)
}
