// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for hotel CRUD, the
// list filters and the two aggregate count queries. The hotel→room
// membership lives in the hotel_rooms table; hotels track membership
// but do not own the room lifecycle.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// HotelRepo encapsulates all database queries related to hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

// HotelPatch carries the optional fields of a partial hotel update.
// Nil means "leave unchanged".
type HotelPatch struct {
	Name          *string   `json:"name"`
	Type          *string   `json:"type"`
	City          *string   `json:"city"`
	Address       *string   `json:"address"`
	Distance      *string   `json:"distance"`
	Photos        *[]string `json:"photos"`
	Title         *string   `json:"title"`
	Description   *string   `json:"desc"`
	Rating        *float64  `json:"rating"`
	CheapestPrice *int      `json:"cheapestPrice"`
	Featured      *bool     `json:"featured"`
}

// HotelFilter holds the optional list filters. Zero values mean "no filter";
// Featured uses a pointer so that featured=false can be filtered explicitly.
type HotelFilter struct {
	City     string
	Type     string
	MinPrice int
	MaxPrice int
	Featured *bool
	Limit    int
}

const hotelCols = "id,name,type,city,address,distance,photos,title,description,rating,cheapest_price,featured"

// Create inserts a new hotel. On success the ID field is populated with the
// auto-generated value.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	photos, err := marshalPhotos(h.Photos)
	if err != nil {
		return err
	}
	const q = `INSERT INTO hotels
		(name, type, city, address, distance, photos, title, description, rating, cheapest_price, featured)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.Type, h.City, h.Address, h.Distance, photos,
		h.Title, h.Description, h.Rating, h.CheapestPrice, h.Featured)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	if h.Rooms == nil {
		h.Rooms = []uint64{}
	}
	return nil
}

// GetByID fetches a hotel with its room-membership list resolved. It
// returns ErrHotelNotFound when the id does not resolve.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+hotelCols+" FROM hotels WHERE id=?", id)
	h, err := scanHotel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if h.Rooms, err = r.roomRefs(ctx, id); err != nil {
		return nil, err
	}
	return h, nil
}

// Update applies a partial patch and returns the updated record.
// ErrHotelNotFound is returned when the id does not resolve.
func (r *HotelRepo) Update(ctx context.Context, id uint64, patch HotelPatch) (*model.Hotel, error) {
	sets := make([]string, 0, 11)
	args := make([]any, 0, 12)
	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.Distance != nil {
		add("distance", *patch.Distance)
	}
	if patch.Photos != nil {
		photos, err := marshalPhotos(*patch.Photos)
		if err != nil {
			return nil, err
		}
		add("photos", photos)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Rating != nil {
		add("rating", *patch.Rating)
	}
	if patch.CheapestPrice != nil {
		add("cheapest_price", *patch.CheapestPrice)
	}
	if patch.Featured != nil {
		add("featured", *patch.Featured)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx,
			"UPDATE hotels SET "+strings.Join(sets, ", ")+" WHERE id=?", args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a hotel together with its hotel_rooms membership rows in
// one transaction. Rooms themselves are left intact: the hotel only tracks
// membership. ErrHotelNotFound is returned when the id does not resolve.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM hotel_rooms WHERE hotel_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM hotels WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrHotelNotFound
		return err
	}
	return nil
}

// List returns hotels matching the optional filters; no filters returns all.
func (r *HotelRepo) List(ctx context.Context, f HotelFilter) ([]*model.Hotel, error) {
	q := "SELECT " + hotelCols + " FROM hotels"
	conds := make([]string, 0, 5)
	args := make([]any, 0, 5)
	if f.City != "" {
		conds = append(conds, "city=?")
		args = append(args, f.City)
	}
	if f.Type != "" {
		conds = append(conds, "type=?")
		args = append(args, f.Type)
	}
	if f.MinPrice > 0 {
		conds = append(conds, "cheapest_price>=?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		conds = append(conds, "cheapest_price<=?")
		args = append(args, f.MaxPrice)
	}
	if f.Featured != nil {
		conds = append(conds, "featured=?")
		args = append(args, *f.Featured)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, h := range out {
		if h.Rooms, err = r.roomRefs(ctx, h.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CountByCity returns one count per input city, preserving input order and
// including zero for cities with no hotels.
func (r *HotelRepo) CountByCity(ctx context.Context, cities []string) ([]int64, error) {
	out := make([]int64, 0, len(cities))
	for _, city := range cities {
		var n int64
		if err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM hotels WHERE city=?", city).Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// CountByType returns one bucket per canonical lodging type, in canonical
// order, including empty buckets.
func (r *HotelRepo) CountByType(ctx context.Context) ([]model.TypeCount, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT type, COUNT(*) FROM hotels GROUP BY type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64, len(model.CanonicalTypes))
	for rows.Next() {
		var t string
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		counts[t] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]model.TypeCount, 0, len(model.CanonicalTypes))
	for _, t := range model.CanonicalTypes {
		out = append(out, model.TypeCount{Type: t, Count: counts[t]})
	}
	return out, nil
}

// GetRooms resolves the hotel's membership list into full room records, in
// membership insertion order. ErrHotelNotFound is returned when the hotel
// itself is absent.
func (r *HotelRepo) GetRooms(ctx context.Context, hotelID uint64) ([]*model.Room, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM hotels WHERE id=?", hotelID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	ids, err := r.roomRefs(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Room, 0, len(ids))
	for _, id := range ids {
		room, err := loadRoom(ctx, r.db, id)
		if err != nil {
			if errors.Is(err, ErrRoomNotFound) {
				continue // orphaned reference; membership outlived the room
			}
			return nil, err
		}
		out = append(out, room)
	}
	return out, nil
}

// roomRefs returns the member room ids of a hotel in insertion order.
func (r *HotelRepo) roomRefs(ctx context.Context, hotelID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT room_id FROM hotel_rooms WHERE hotel_id=? ORDER BY id", hotelID)
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
	return ids, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanHotel(row rowScanner) (*model.Hotel, error) {
	var h model.Hotel
	var photos sql.NullString
	if err := row.Scan(&h.ID, &h.Name, &h.Type, &h.City, &h.Address, &h.Distance,
		&photos, &h.Title, &h.Description, &h.Rating, &h.CheapestPrice, &h.Featured); err != nil {
		return nil, err
	}
	h.Photos = []string{}
	if photos.Valid && photos.String != "" {
		if err := json.Unmarshal([]byte(photos.String), &h.Photos); err != nil {
			return nil, err
		}
	}
	return &h, nil
}

func marshalPhotos(photos []string) ([]byte, error) {
	if photos == nil {
		photos = []string{}
	}
	return json.Marshal(photos)
}
