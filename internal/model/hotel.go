package model

// CanonicalTypes is the fixed set of lodging types. CountByType always
// returns one bucket per entry, in this order, even when a bucket is empty.
var CanonicalTypes = []string{"hotel", "apartment", "resort", "villa", "cabin"}

// Hotel represents a bookable property as stored in the `hotels` table.
// Photos are persisted as a JSON column. Rooms holds the ids of the rooms
// that belong to this hotel; the list itself lives in the `hotel_rooms`
// membership table (a hotel tracks membership but does not own the room
// lifecycle), ordered by insertion.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – property name.
//  Type          – one of the canonical lodging types.
//  City          – city used by the countByCity aggregate.
//  Address       – street address.
//  Distance      – free-form distance description (e.g. "500m from center").
//  Photos        – photo URLs.
//  Title         – listing headline.
//  Description   – listing body text (serialized as "desc").
//  Rating        – average rating, nil until rated.
//  Rooms         – ids of member rooms in insertion order.
//  CheapestPrice – lowest room price used by list filters.
//  Featured      – whether the property appears in featured listings.
type Hotel struct {
	ID            uint64   `json:"id"`            // hotels.id
	Name          string   `json:"name"`          // hotels.name
	Type          string   `json:"type"`          // hotels.type
	City          string   `json:"city"`          // hotels.city
	Address       string   `json:"address"`       // hotels.address
	Distance      string   `json:"distance"`      // hotels.distance
	Photos        []string `json:"photos"`        // hotels.photos (JSON column)
	Title         string   `json:"title"`         // hotels.title
	Description   string   `json:"desc"`          // hotels.description
	Rating        *float64 `json:"rating"`        // hotels.rating (nullable)
	Rooms         []uint64 `json:"rooms"`         // hotel_rooms membership
	CheapestPrice int      `json:"cheapestPrice"` // hotels.cheapest_price
	Featured      bool     `json:"featured"`      // hotels.featured
}

// TypeCount is one bucket of the countByType aggregate.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}
