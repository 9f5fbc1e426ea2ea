package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

// 2025-06-02 is a Monday, 2025-06-07 a Saturday, 2025-06-01 a Sunday.

func TestListServicesSorted(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/services", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var services []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &services); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("len = %d, want 2", len(services))
	}
	if services[0]["name"] != "Plaukų kirpimas" || services[1]["name"] != "Barzdos modeliavimas" {
		t.Fatalf("catalog not ordered by sort_order: %v", services)
	}
}

func TestCreateBookingMissingField(t *testing.T) {
	env := newTestEnv(t)
	// No phone.
	rec := env.do(t, http.MethodPost, "/api/bookings",
		`{"name":"Jonas","service":"Plaukų kirpimas","date":"2025-06-02","time":"10:00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if all, _ := env.bookings.ListAll(context.Background()); len(all) != 0 {
		t.Fatalf("booking persisted despite validation error")
	}
}

func TestCreateBookingOutsideBusinessHours(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct{ date, time string }{
		{"2025-06-01", "10:00"}, // Sunday: closed
		{"2025-06-02", "19:00"}, // after closing
		{"2025-06-02", "10:15"}, // off the half-hour grid
		{"not-a-date", "10:00"},
	}
	for _, tc := range cases {
		rec := env.do(t, http.MethodPost, "/api/bookings",
			`{"name":"Jonas","phone":"+37060000000","service":"Plaukų kirpimas","date":"`+tc.date+`","time":"`+tc.time+`"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("(%s %s) status = %d, want 400", tc.date, tc.time, rec.Code)
		}
	}
}

// The spec's end-to-end scenario: create, conflict on the same slot,
// occupied times listing, and re-booking after a cancellation.
func TestBookingSlotLifecycle(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"Jonas","phone":"+37060000000","service":"Plaukų kirpimas","date":"2025-06-02","time":"10:00"}`

	rec := env.do(t, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeMap(t, rec)
	id, _ := resp["bookingId"].(string)
	if id == "" {
		t.Fatal("bookingId missing from response")
	}
	b, err := env.bookings.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("stored booking: %v", err)
	}
	if b.Status != "pending" {
		t.Fatalf("stored status = %q, want pending", b.Status)
	}

	// Same slot again: conflict, not validation.
	rec = env.do(t, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second create status = %d, want 409", rec.Code)
	}

	// The slot shows up as occupied.
	rec = env.do(t, http.MethodGet, "/api/bookings/times/2025-06-02", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("times status = %d", rec.Code)
	}
	var times []string
	if err := json.Unmarshal(rec.Body.Bytes(), &times); err != nil {
		t.Fatalf("decode times: %v", err)
	}
	if len(times) != 1 || times[0] != "10:00" {
		t.Fatalf("times = %v, want [10:00]", times)
	}

	// After cancellation the slot is free again.
	if err := env.bookings.UpdateStatus(context.Background(), id, "cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	rec = env.do(t, http.MethodGet, "/api/bookings/times/2025-06-02", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &times); err != nil {
		t.Fatalf("decode times: %v", err)
	}
	if len(times) != 0 {
		t.Fatalf("times after cancel = %v, want empty", times)
	}
	rec = env.do(t, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create after cancel status = %d, want 201", rec.Code)
	}
}

func TestSlotsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	// Book one weekday slot, then ask for the day's grid.
	rec := env.do(t, http.MethodPost, "/api/bookings",
		`{"name":"Jonas","phone":"+37060000000","service":"Plaukų kirpimas","date":"2025-06-02","time":"10:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/bookings/slots/2025-06-02", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("slots status = %d", rec.Code)
	}
	var resp struct {
		Date  string `json:"date"`
		Slots []struct {
			Time      string `json:"time"`
			Available bool   `json:"available"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Slots) != 20 {
		t.Fatalf("weekday slot count = %d, want 20", len(resp.Slots))
	}
	for _, s := range resp.Slots {
		if s.Time == "10:00" && s.Available {
			t.Fatal("booked slot reported available")
		}
		if s.Time == "10:30" && !s.Available {
			t.Fatal("free slot reported unavailable")
		}
	}

	// Sunday: open day grid is empty.
	rec = env.do(t, http.MethodGet, "/api/bookings/slots/2025-06-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sunday slots status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("sunday slot count = %d, want 0", len(resp.Slots))
	}

	// Malformed date is a client error.
	rec = env.do(t, http.MethodGet, "/api/bookings/slots/garbage", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want 400", rec.Code)
	}
}
