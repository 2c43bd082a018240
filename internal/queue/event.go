// Package queue defines message payloads exchanged over the message broker.
package queue

// RoomBookedEvent is published when an availability update marks dates on a
// room number as booked. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type RoomBookedEvent struct {
	RoomNumberID uint64   `json:"room_number_id"`
	Dates        []string `json:"dates"`
	BookedBy     uint64   `json:"booked_by"`
	BookedAt     string   `json:"booked_at"`
}
