package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL and bootstraps the schema.
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist.
// Coordinates are stored as VARCHAR on purpose: legacy rows carry them
// as text and clients coerce them to float at the point of use.
func InitPostgresTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone VARCHAR(50),
			photo TEXT,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			password_hash VARCHAR(255) NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS artisans (
			id SERIAL PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			specialty VARCHAR(255),
			location VARCHAR(255),
			latitude VARCHAR(50),
			longitude VARCHAR(50),
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			main_image TEXT,
			images TEXT,
			images360 TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS sejours (
			id SERIAL PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name_fr VARCHAR(255) NOT NULL,
			name_en VARCHAR(255),
			name_ar VARCHAR(255),
			description_fr TEXT,
			description_en TEXT,
			description_ar TEXT,
			location VARCHAR(255),
			duration VARCHAR(100),
			latitude VARCHAR(50),
			longitude VARCHAR(50),
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			main_image TEXT,
			images TEXT,
			images360 TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS caravanes (
			id SERIAL PRIMARY KEY,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name_fr VARCHAR(255) NOT NULL,
			name_en VARCHAR(255),
			name_ar VARCHAR(255),
			description_fr TEXT,
			description_en TEXT,
			description_ar TEXT,
			location VARCHAR(255),
			duration VARCHAR(100),
			latitude VARCHAR(50),
			longitude VARCHAR(50),
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			main_image TEXT,
			images TEXT,
			images360 TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS reservations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			listing_type VARCHAR(20) NOT NULL,
			listing_id INTEGER NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE,
			guests INTEGER NOT NULL DEFAULT 1,
			amount NUMERIC(10,2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			reservation_id UUID NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount NUMERIC(10,2) NOT NULL,
			card_last4 VARCHAR(4),
			card_holder VARCHAR(255),
			status VARCHAR(20) NOT NULL,
			receipt_number VARCHAR(50) UNIQUE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users(LOWER(email))`,
		`CREATE INDEX IF NOT EXISTS idx_artisans_location ON artisans(location)`,
		`CREATE INDEX IF NOT EXISTS idx_sejours_location ON sejours(location)`,
		`CREATE INDEX IF NOT EXISTS idx_caravanes_location ON caravanes(location)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_user_id ON reservations(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_created_at ON reservations(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_reservation_id ON payments(reservation_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user_id ON payments(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_receipt_number ON payments(receipt_number)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection.
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
