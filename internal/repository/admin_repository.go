package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gspotbarber/barbershop-booking/internal/model"
)

// AdminRepo reads and updates the single administrator record. Lookups are
// case-sensitive exact matches on username; the only mutation is replacing
// the password hash.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// GetByUsername fetches an administrator by exact username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM admins WHERE BINARY username = ? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID fetches an administrator by id.
func (r *AdminRepo) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM admins WHERE id = ? LIMIT 1",
		id).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdatePassword replaces the stored password hash for the given admin.
func (r *AdminRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE admins SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
