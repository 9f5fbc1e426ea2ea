package repository

import (
	"context"
	"database/sql"

	"github.com/gspotbarber/barbershop-booking/internal/model"
)

// ServiceRepo reads the seeded service catalog. The public API never
// mutates services; inserts happen only during first-boot seeding.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

// List returns every service ordered by sort_order ascending.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, price, description, duration_min, sort_order
		 FROM services ORDER BY sort_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []model.Service{}
	for rows.Next() {
		var s model.Service
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &desc, &s.DurationMin, &s.SortOrder); err != nil {
			return nil, err
		}
		s.Description = desc.String
		services = append(services, s)
	}
	return services, rows.Err()
}
