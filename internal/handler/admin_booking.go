package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gspotbarber/barbershop-booking/internal/model"
	"github.com/gspotbarber/barbershop-booking/internal/queue"
	"github.com/gspotbarber/barbershop-booking/internal/repository"
	queue_publisher "github.com/gspotbarber/barbershop-booking/internal/service"
)

// AdminBookingHandler serves the authenticated booking-management
// endpoints. All routes sit behind the session middleware, so by the time
// these run the request is known to come from the administrator.
type AdminBookingHandler struct {
	Bookings BookingStore
	Events   *queue_publisher.Publisher
}

func NewAdminBookingHandler(b BookingStore, ev *queue_publisher.Publisher) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b, Events: ev}
}

// List handles GET /api/admin/bookings: every booking, most recent date
// first, then time ascending within a date.
func (h *AdminBookingHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.ListAll(ctx)
	if err != nil {
		log.Printf("list bookings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko gauti registracijų"})
	}
	return c.JSON(http.StatusOK, bookings)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/bookings/:id. The status value
// must be one of the four known statuses, and the (current, requested)
// pair must be a legal transition: pending may become confirmed or
// cancelled, confirmed may become completed or cancelled, and cancelled
// and completed are terminal. Cancelling frees the slot for re-booking.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Netinkamas statusas"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Registracija nerasta"})
		}
		log.Printf("load booking %s failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko atnaujinti registracijos"})
	}
	if !model.CanTransition(b.Status, req.Status) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": fmt.Sprintf("Negalimas statuso pakeitimas iš %q į %q", b.Status, req.Status),
		})
	}

	if err := h.Bookings.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Registracija nerasta"})
		}
		log.Printf("update booking %s failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko atnaujinti registracijos"})
	}

	_ = h.Events.Publish(ctx, queue.BookingEvent{
		Type:       queue.EventBookingStatusChanged,
		BookingID:  b.ID,
		Name:       b.Name,
		Phone:      b.Phone,
		Email:      b.Email,
		Service:    b.Service,
		Date:       b.Date,
		Time:       b.Time,
		Status:     req.Status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /api/admin/bookings/:id. Hard delete, irreversible;
// the only confirmation is the client-side prompt.
func (h *AdminBookingHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Registracija nerasta"})
		}
		log.Printf("delete booking %s failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko ištrinti registracijos"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
