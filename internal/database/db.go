package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/gspotbarber/barbershop-booking/internal/utils"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the three tables when they do not exist yet.
//
// bookings.slot_key carries the slot invariant: it holds "<date> <time>"
// while the booking is active and NULL once cancelled, and the UNIQUE index
// on it makes "reserve slot if free" atomic at insert time. MySQL unique
// indexes ignore NULLs, so any number of cancelled bookings may share a slot.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			username VARCHAR(64) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uq_admins_username (username)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS services (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(128) NOT NULL,
			price DECIMAL(8,2) NOT NULL,
			description VARCHAR(255) NULL,
			duration_min INT NOT NULL DEFAULT 30,
			sort_order INT NOT NULL DEFAULT 0,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id CHAR(36) NOT NULL,
			customer_name VARCHAR(128) NOT NULL,
			phone VARCHAR(32) NOT NULL,
			email VARCHAR(128) NULL,
			service VARCHAR(128) NOT NULL,
			date CHAR(10) NOT NULL,
			time CHAR(5) NOT NULL,
			message TEXT NULL,
			status ENUM('pending','confirmed','cancelled','completed') NOT NULL DEFAULT 'pending',
			slot_key VARCHAR(16) NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uq_bookings_slot (slot_key),
			KEY ix_bookings_date (date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// defaultServices is the fixed catalog inserted at first boot.
var defaultServices = []struct {
	name, description string
	price             float64
	duration, sort    int
}{
	{"Plaukų kirpimas", "Profesionalus vyrų plaukų kirpimas", 25, 30, 1},
	{"Barzdos modeliavimas", "Barzdos formavimas ir modeliavimas", 25, 30, 2},
	{"Barzda su karštų rankšluosčių", "Barzdos tvarkymas su karštais rankšluosčiais", 25, 35, 3},
	{"Kirpimas + barzdos modeliavimas", "Plaukų kirpimas kartu su barzdos modeliavimu", 35, 50, 4},
	{"Grožio kaukė + antakių korekcija", "Veido kaukė ir antakių korekcija", 15, 20, 5},
	{"Dažymo konsultacija", "Konsultacija dėl plaukų dažymo", 5, 15, 6},
	{"Kirpimas + barzda + grožio kaukė", "Pilnas kompleksas: kirpimas, barzda ir kaukė", 40, 60, 7},
	{"Kompleksas (viskas)", "Kirpimas + barzda + karšti rankšluosčiai + kaukė", 50, 75, 8},
}

// Seed inserts the default administrator and the service catalog when their
// tables are empty. It runs in one transaction so a partial first boot
// cannot leave the reference data half-seeded.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var admins int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&admins); err != nil {
		return fmt.Errorf("seed: count admins: %w", err)
	}
	if admins == 0 {
		hash, err := utils.HashPassword("barber2024", bcryptCost)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO admins (username, password_hash) VALUES (?,?)", "admin", hash); err != nil {
			return fmt.Errorf("seed: insert admin: %w", err)
		}
		log.Printf("seeded default admin account")
	}

	var services int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM services").Scan(&services); err != nil {
		return fmt.Errorf("seed: count services: %w", err)
	}
	if services == 0 {
		for _, s := range defaultServices {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO services (name, price, description, duration_min, sort_order)
				 VALUES (?,?,?,?,?)`,
				s.name, s.price, s.description, s.duration, s.sort); err != nil {
				return fmt.Errorf("seed: insert service %q: %w", s.name, err)
			}
		}
		log.Printf("seeded %d default services", len(defaultServices))
	}

	return tx.Commit()
}
