// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to HTTP status codes without inspecting driver error strings.
package repository

import "errors"

// ErrUserNotFound is returned when a user id or username does not resolve.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned on a username unique-key violation.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned on an email unique-key violation.
var ErrEmailExists = errors.New("email already exists")

// ErrHotelNotFound is returned when a hotel id does not resolve.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrRoomNotFound is returned when a room id does not resolve.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomNumberNotFound is returned when a room-number id does not resolve
// during an availability update.
var ErrRoomNumberNotFound = errors.New("room number not found")
