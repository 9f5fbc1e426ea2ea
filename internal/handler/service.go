package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ServiceHandler serves the public service catalog.
type ServiceHandler struct {
	Services ServiceStore
}

func NewServiceHandler(s ServiceStore) *ServiceHandler { return &ServiceHandler{Services: s} }

// List handles GET /api/services. It returns every service ordered by
// sort_order ascending; there is no filtering or pagination.
func (h *ServiceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.List(ctx)
	if err != nil {
		log.Printf("list services failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Nepavyko gauti paslaugų"})
	}
	return c.JSON(http.StatusOK, services)
}
