package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gspotbarber/barbershop-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings.
//
// The slot invariant (at most one active booking per (date, time) pair) is
// enforced by the UNIQUE slot_key column: it holds "<date> <time>" while the
// booking is active and NULL once cancelled, so the database itself rejects
// a second active booking for the same slot. MySQL reports that as error
// 1062, which Create maps to ErrSlotTaken.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// Create inserts a new pending booking, generating its uuid and claiming
// the slot atomically. On success the ID, Status and CreatedAt fields of b
// are populated.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.New().String()
	b.Status = model.StatusPending
	b.CreatedAt = time.Now().UTC()
	slotKey := b.Date + " " + b.Time

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings
		   (id, customer_name, phone, email, service, date, time, message, status, slot_key, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.Name, b.Phone, nullable(b.Email), b.Service, b.Date, b.Time,
		nullable(b.Message), b.Status, slotKey, b.CreatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// BookedTimes returns the times (HH:MM, ascending) with an active booking
// on the given date. Cancelled bookings never occupy a slot.
func (r *BookingRepo) BookedTimes(ctx context.Context, date string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT time FROM bookings
		 WHERE date = ? AND status <> ? ORDER BY time ASC`,
		date, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	times := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// ListAll returns every booking, most recent date first, then time
// ascending within a date.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, customer_name, phone, email, service, date, time, message, status, created_at
		 FROM bookings ORDER BY date DESC, time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// GetByID fetches a single booking. Returns ErrNotFound when no booking
// with the given id exists.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, customer_name, phone, email, service, date, time, message, status, created_at
		 FROM bookings WHERE id = ? LIMIT 1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus sets the booking's status. Moving to cancelled also clears
// slot_key so the slot becomes bookable again; transition legality is the
// caller's concern. Returns ErrNotFound when the id does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	var (
		res sql.Result
		err error
	)
	if status == model.StatusCancelled {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE bookings SET status = ?, slot_key = NULL WHERE id = ?", status, id)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE bookings SET status = ? WHERE id = ?", status, id)
	}
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a booking permanently. Returns ErrNotFound when the id
// does not exist.
func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows for scanBooking.
type scanner interface{ Scan(dest ...any) error }

func scanBooking(s scanner) (*model.Booking, error) {
	var b model.Booking
	var email, message sql.NullString
	err := s.Scan(&b.ID, &b.Name, &b.Phone, &email, &b.Service,
		&b.Date, &b.Time, &message, &b.Status, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Email = email.String
	b.Message = message.String
	return &b, nil
}

// nullable maps "" to NULL for optional text columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
