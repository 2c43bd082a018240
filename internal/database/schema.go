package database

import (
	"context"
	"database/sql"
)

// Migrate creates the schema when it does not exist yet. Statements are
// idempotent so the bootstrap can run on every startup. The unique key on
// room_unavailable_dates is what makes availability updates dedup by exact
// date, and hotel_rooms keeps the hotel→room membership as its own relation
// so room create/delete can maintain both sides in one transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(64) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_username (username),
			UNIQUE KEY uq_users_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS hotels (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(32) NOT NULL,
			city VARCHAR(128) NOT NULL,
			address VARCHAR(255) NOT NULL,
			distance VARCHAR(128) NOT NULL DEFAULT '',
			photos JSON NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			rating DOUBLE NULL,
			cheapest_price INT NOT NULL,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_hotels_city (city),
			KEY idx_hotels_type (type)
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			price INT NOT NULL,
			max_people INT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS hotel_rooms (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			hotel_id BIGINT UNSIGNED NOT NULL,
			room_id BIGINT UNSIGNED NOT NULL,
			UNIQUE KEY uq_hotel_rooms (hotel_id, room_id),
			KEY idx_hotel_rooms_room (room_id)
		)`,
		`CREATE TABLE IF NOT EXISTS room_numbers (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			room_id BIGINT UNSIGNED NOT NULL,
			number INT NOT NULL,
			KEY idx_room_numbers_room (room_id)
		)`,
		`CREATE TABLE IF NOT EXISTS room_unavailable_dates (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			room_number_id BIGINT UNSIGNED NOT NULL,
			date DATE NOT NULL,
			UNIQUE KEY uq_room_dates (room_number_id, date)
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
