// Package schedule owns the barbershop's business-hours policy: which
// half-hour slots are bookable on a given calendar day. The server is the
// single source of truth here; the browser renders whatever this package
// hands it and creation rejects anything off the grid.
package schedule

import (
	"fmt"
	"time"
)

// Opening hours: 09:00-19:00 Monday to Friday, 10:00-16:00 on Saturday,
// closed on Sunday. Slots are half-hour windows starting on the hour or
// half hour, the last one beginning 30 minutes before closing.
const (
	weekdayOpen   = 9
	weekdayClose  = 19
	saturdayOpen  = 10
	saturdayClose = 16
)

const dateLayout = "2006-01-02"

// Slots returns every candidate slot time (HH:MM, ascending) for the given
// date. A closed day yields an empty slice. An unparseable date is an error.
func Slots(date string) ([]string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	var open, close int
	switch d.Weekday() {
	case time.Sunday:
		return []string{}, nil
	case time.Saturday:
		open, close = saturdayOpen, saturdayClose
	default:
		open, close = weekdayOpen, weekdayClose
	}
	slots := make([]string, 0, (close-open)*2)
	for h := open; h < close; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots, nil
}

// Allows reports whether t is a bookable slot on date. It returns false for
// closed days and times off the half-hour grid, and an error only when the
// date itself cannot be parsed.
func Allows(date, t string) (bool, error) {
	slots, err := Slots(date)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == t {
			return true, nil
		}
	}
	return false, nil
}
