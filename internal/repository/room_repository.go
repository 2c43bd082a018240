package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// RoomRepo encapsulates all database queries related to rooms, their
// physical room numbers and per-number unavailable dates. Room creation and
// deletion also maintain the parent hotel's membership list: both sides are
// written in a single transaction so callers never observe a room without
// its hotel reference or the other way around.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// RoomPatch carries the optional fields of a partial room update.
// Room numbers are managed through dedicated operations, not the patch.
type RoomPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"desc"`
	Price       *int    `json:"price"`
	MaxPeople   *int    `json:"maxPeople"`
}

// Create inserts the room, its room numbers and the hotel_rooms membership
// row in one transaction. ErrHotelNotFound is returned when the parent
// hotel does not exist; nothing is written in that case.
func (r *RoomRepo) Create(ctx context.Context, hotelID uint64, room *model.Room) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM hotels WHERE id=?", hotelID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrHotelNotFound
		}
		return err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO rooms (title, description, price, max_people) VALUES (?,?,?,?)",
		room.Title, room.Description, room.Price, room.MaxPeople)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)

	for i := range room.RoomNumbers {
		res, err = tx.ExecContext(ctx,
			"INSERT INTO room_numbers (room_id, number) VALUES (?,?)",
			room.ID, room.RoomNumbers[i].Number)
		if err != nil {
			return err
		}
		nid, err2 := res.LastInsertId()
		if err2 != nil {
			err = err2
			return err
		}
		room.RoomNumbers[i].ID = uint64(nid)
		if room.RoomNumbers[i].UnavailableDates == nil {
			room.RoomNumbers[i].UnavailableDates = []string{}
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO hotel_rooms (hotel_id, room_id) VALUES (?,?)", hotelID, room.ID)
	return err
}

// GetByID fetches a room with its numbers and unavailable dates.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	return loadRoom(ctx, r.db, id)
}

// Update applies a partial patch and returns the updated record.
// ErrRoomNotFound is returned when the id does not resolve.
func (r *RoomRepo) Update(ctx context.Context, id uint64, patch RoomPatch) (*model.Room, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *patch.Description)
	}
	if patch.Price != nil {
		sets = append(sets, "price=?")
		args = append(args, *patch.Price)
	}
	if patch.MaxPeople != nil {
		sets = append(sets, "max_people=?")
		args = append(args, *patch.MaxPeople)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx,
			"UPDATE rooms SET "+strings.Join(sets, ", ")+" WHERE id=?", args...); err != nil {
			return nil, err
		}
	}
	return loadRoom(ctx, r.db, id)
}

// ListAll returns every room ordered by id.
func (r *RoomRepo) ListAll(ctx context.Context) ([]*model.Room, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM rooms ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]*model.Room, 0, len(ids))
	for _, id := range ids {
		room, err := loadRoom(ctx, r.db, id)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, nil
}

// UpdateAvailability appends dates to a room number's unavailable set.
// Input duplicates are collapsed and the unique (room_number_id, date) key
// plus INSERT IGNORE make the whole operation idempotent: booking the same
// date twice is a no-op, not an error. Dates must be YYYY-MM-DD strings;
// the handler validates the format. ErrRoomNumberNotFound is returned when
// the room-number id does not resolve.
func (r *RoomRepo) UpdateAvailability(ctx context.Context, roomNumberID uint64, dates []string) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM room_numbers WHERE id=?", roomNumberID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRoomNumberNotFound
		}
		return err
	}
	for _, d := range DedupDates(dates) {
		if _, err := r.db.ExecContext(ctx,
			"INSERT IGNORE INTO room_unavailable_dates (room_number_id, date) VALUES (?,?)",
			roomNumberID, d); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the room, its numbers, their dates and the hotel_rooms
// membership row in one transaction, so the hotel's reference list and the
// room collection stay in sync. ErrRoomNotFound is returned when the room
// id does not resolve; nothing is deleted in that case.
func (r *RoomRepo) Delete(ctx context.Context, roomID, hotelID uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM rooms WHERE id=?", roomID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrRoomNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE d FROM room_unavailable_dates d
		 JOIN room_numbers n ON n.id = d.room_number_id
		 WHERE n.room_id = ?`, roomID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM room_numbers WHERE room_id=?", roomID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"DELETE FROM hotel_rooms WHERE hotel_id=? AND room_id=?", hotelID, roomID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", roomID)
	return err
}

// DedupDates collapses duplicate date strings while preserving first-seen
// order. Availability updates are defined as set inserts, so a request
// carrying the same date twice books it once.
func DedupDates(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// loadRoom fetches a room row plus its numbers and dates. Shared with the
// hotel repository's GetRooms.
func loadRoom(ctx context.Context, db *sql.DB, id uint64) (*model.Room, error) {
	var room model.Room
	err := db.QueryRowContext(ctx,
		"SELECT id,title,description,price,max_people FROM rooms WHERE id=?", id).
		Scan(&room.ID, &room.Title, &room.Description, &room.Price, &room.MaxPeople)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id, number FROM room_numbers WHERE room_id=? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	room.RoomNumbers = make([]model.RoomNumber, 0)
	for rows.Next() {
		var n model.RoomNumber
		if err := rows.Scan(&n.ID, &n.Number); err != nil {
			return nil, err
		}
		room.RoomNumbers = append(room.RoomNumbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range room.RoomNumbers {
		dates, err := loadDates(ctx, db, room.RoomNumbers[i].ID)
		if err != nil {
			return nil, err
		}
		room.RoomNumbers[i].UnavailableDates = dates
	}
	return &room, nil
}

func loadDates(ctx context.Context, db *sql.DB, roomNumberID uint64) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DATE_FORMAT(date, '%Y-%m-%d') FROM room_unavailable_dates
		 WHERE room_number_id=? ORDER BY date`, roomNumberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
