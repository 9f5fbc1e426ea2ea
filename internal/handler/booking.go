package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gspotbarber/barbershop-booking/internal/model"
	"github.com/gspotbarber/barbershop-booking/internal/queue"
	"github.com/gspotbarber/barbershop-booking/internal/repository"
	"github.com/gspotbarber/barbershop-booking/internal/schedule"
	queue_publisher "github.com/gspotbarber/barbershop-booking/internal/service"
)

// BookingHandler serves the public booking endpoints: creation, occupied
// times per date, and the server-side slot policy rendered for clients.
type BookingHandler struct {
	Bookings BookingStore
	Events   *queue_publisher.Publisher
}

func NewBookingHandler(b BookingStore, ev *queue_publisher.Publisher) *BookingHandler {
	return &BookingHandler{Bookings: b, Events: ev}
}

type createBookingReq struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Create handles POST /api/bookings. Required fields are name, phone,
// service, date and time. The requested time must fall on an open
// business-hours slot, and the slot must be free of active bookings; the
// storage layer enforces the latter atomically.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Prašome užpildyti visus privalomus laukus"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Phone == "" || req.Service == "" || req.Date == "" || req.Time == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Prašome užpildyti visus privalomus laukus"})
	}

	ok, err := schedule.Allows(req.Date, req.Time)
	if err != nil || !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Pasirinktas laikas negalimas"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b := &model.Booking{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Service: req.Service,
		Date:    req.Date,
		Time:    req.Time,
		Message: req.Message,
	}
	if err := h.Bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Šis laikas jau užimtas. Pasirinkite kitą laiką."})
		}
		log.Printf("create booking failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Serverio klaida. Bandykite dar kartą."})
	}

	// Best effort: the response does not depend on the broker.
	_ = h.Events.Publish(ctx, queue.BookingEvent{
		Type:       queue.EventBookingCreated,
		BookingID:  b.ID,
		Name:       b.Name,
		Phone:      b.Phone,
		Email:      b.Email,
		Service:    b.Service,
		Date:       b.Date,
		Time:       b.Time,
		Status:     b.Status,
		OccurredAt: b.CreatedAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":   true,
		"message":   "Registracija sėkminga! Laukiame jūsų.",
		"bookingId": b.ID,
	})
}

// BookedTimes handles GET /api/bookings/times/:date. It returns the time
// strings with an active booking on that date, for graying out slots in
// the booking form. Public: it leaks only slot occupancy, not identity.
func (h *BookingHandler) BookedTimes(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	times, err := h.Bookings.BookedTimes(ctx, c.Param("date"))
	if err != nil {
		log.Printf("booked times failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Klaida gaunant laikus"})
	}
	return c.JSON(http.StatusOK, times)
}

type slotResp struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Slots handles GET /api/bookings/slots/:date. It renders the business-
// hours policy for one date: every candidate half-hour slot with an
// availability flag. Closed days return an empty slot list. Clients render
// their pickers from this instead of re-deriving the opening hours.
func (h *BookingHandler) Slots(c echo.Context) error {
	date := c.Param("date")
	candidates, err := schedule.Slots(date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Netinkama data"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booked, err := h.Bookings.BookedTimes(ctx, date)
	if err != nil {
		log.Printf("slots failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Klaida gaunant laikus"})
	}
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	slots := make([]slotResp, 0, len(candidates))
	for _, t := range candidates {
		slots = append(slots, slotResp{Time: t, Available: !taken[t]})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "slots": slots})
}
