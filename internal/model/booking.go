package model

import "time"

// Booking statuses. A booking is "active" while its status is anything
// other than StatusCancelled; only active bookings occupy a slot.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking is a visitor's reservation of one half-hour slot as stored in
// the `bookings` table. The service field is a free-text snapshot of the
// catalog name at booking time, deliberately not a foreign key, so the
// booking history survives catalog edits.
//
// Fields:
//  ID        – uuid primary key.
//  Name      – customer name.
//  Phone     – customer phone number.
//  Email     – optional customer email.
//  Service   – service name snapshot.
//  Date      – calendar day, YYYY-MM-DD.
//  Time      – half-hour slot, HH:MM.
//  Message   – optional free-text note from the customer.
//  Status    – one of the four status constants above.
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// transitions is the closed set of legal status changes. The client only
// offers these, and the server enforces the same table on PATCH.
// cancelled and completed are terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a booking in state from may move to state to.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
