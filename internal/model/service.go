package model

// Service is one entry of the barbershop's catalog as stored in the
// `services` table. The catalog is seeded once at first boot and the
// public API only ever reads it, ordered by SortOrder ascending.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the service.
//  Price       – price in currency units (euros).
//  Description – optional longer description.
//  DurationMin – duration in minutes (default 30).
//  SortOrder   – ascending display position (default 0).
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	DurationMin int     `json:"duration"`
	SortOrder   int     `json:"sort_order"`
}
