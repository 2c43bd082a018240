package model

import "time"

// User represents an application user record as stored in the
// `users` table. The password hash is never serialized; handlers
// return the struct directly so the json tags define the public
// representation.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  IsAdmin      – whether the user may mutate hotels and rooms.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`           // users.id
	Username     string    `json:"username"`     // users.username
	Email        string    `json:"email"`        // users.email
	PasswordHash string    `json:"-"`            // users.password_hash (never exposed)
	IsAdmin      bool      `json:"isAdmin"`      // users.is_admin
	CreatedAt    time.Time `json:"createdAt"`    // users.created_at
	UpdatedAt    time.Time `json:"updatedAt"`    // users.updated_at
}
