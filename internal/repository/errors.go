// Package repository implements persistence for admins, services and
// bookings over MySQL. Sentinel errors defined here let handlers map
// storage outcomes onto the HTTP error taxonomy without inspecting
// driver-level errors themselves.
package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken is returned when a booking insert loses the unique
// slot_key race, i.e. an active booking already occupies the same
// (date, time) pair. Handlers translate this into an HTTP 409.
var ErrSlotTaken = errors.New("slot already taken")
