// Package queue defines message payloads exchanged over the message broker.
package queue

// Event names published to the booking.events queue.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent describes one lifecycle change of a booking. It carries
// enough information for downstream consumers (notifications, analytics)
// to act without querying the primary database. Customer contact details
// are included because the obvious consumer is an SMS/email notifier.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  string `json:"booking_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Service    string `json:"service"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}
