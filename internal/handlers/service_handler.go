package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
)

// GetServices lists treatments by id and name only.
func (h *Handler) GetServices(c *gin.Context) {
	all, err := h.Services.FindMany(c.Request.Context(), store.Filter{})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list services", ""))
		return
	}

	out := make([]models.ServiceSummary, 0, len(all))
	for _, svc := range all {
		out = append(out, models.ServiceSummary{ID: svc.ID, Name: svc.Name})
	}
	c.JSON(http.StatusOK, out)
}

// GetAvailable lists every service with the slots still free on ?date=.
func (h *Handler) GetAvailable(c *gin.Context) {
	ctx := c.Request.Context()
	date := c.Query("date")

	all, err := h.Services.FindMany(ctx, store.Filter{})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list services", ""))
		return
	}

	var booked []models.Booking
	if date != "" {
		booked, err = h.Bookings.FindMany(ctx, store.Filter{"date": date})
		if err != nil {
			h.fail(c, exceptions.FromStoreError(err, "list bookings by date", ""))
			return
		}
	}

	c.JSON(http.StatusOK, services.AvailableSlots(all, booked))
}
