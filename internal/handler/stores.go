package handler

import (
	"context"

	"github.com/gspotbarber/barbershop-booking/internal/model"
)

// Handlers depend on these narrow store interfaces rather than the concrete
// MySQL repositories, so tests can drive them with in-memory fakes. The
// types in internal/repository satisfy them.

// ServiceStore reads the service catalog.
type ServiceStore interface {
	List(ctx context.Context) ([]model.Service, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	BookedTimes(ctx context.Context, date string) ([]string, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// AdminStore reads and updates the administrator record.
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}
