package model

// RoomNumber is a single physical room of a room type, together with the
// dates on which it cannot be booked. Dates use the YYYY-MM-DD form and are
// deduplicated on write, so the slice is a set.
//
// Fields:
//  ID               – primary key identifier.
//  Number           – the door number guests see.
//  UnavailableDates – booked dates, ascending.
type RoomNumber struct {
	ID               uint64   `json:"id"`               // room_numbers.id
	Number           int      `json:"number"`           // room_numbers.number
	UnavailableDates []string `json:"unavailableDates"` // room_unavailable_dates.date
}

// Room represents a room type offered by a hotel, e.g. "Double Deluxe".
// A room is created under a parent hotel but can be fetched and deleted
// independently of it.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – room type name.
//  Description – serialized as "desc".
//  Price       – price per night.
//  MaxPeople   – maximum occupancy.
//  RoomNumbers – the physical rooms of this type.
type Room struct {
	ID          uint64       `json:"id"`          // rooms.id
	Title       string       `json:"title"`       // rooms.title
	Description string       `json:"desc"`        // rooms.description
	Price       int          `json:"price"`       // rooms.price
	MaxPeople   int          `json:"maxPeople"`   // rooms.max_people
	RoomNumbers []RoomNumber `json:"roomNumbers"` // room_numbers rows
}
