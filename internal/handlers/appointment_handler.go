package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GetAppointments lists every booking, for the admin portal and doctor profiles.
func (h *Handler) GetAppointments(c *gin.Context) {
	bookings, err := h.Bookings.FindMany(c.Request.Context(), store.Filter{})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list bookings", ""))
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetPatientBookings lists the caller's own bookings. Asking for someone
// else's is forbidden.
func (h *Handler) GetPatientBookings(c *gin.Context) {
	patient := c.Query("patient")
	email, _ := middleware.EmailFromContext(c)
	if patient == "" || patient != email {
		h.fail(c, exceptions.ErrForbidden("forbidden access"))
		return
	}

	bookings, err := h.Bookings.FindMany(c.Request.Context(), store.Filter{"patient": patient})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list patient bookings", ""))
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	booking, err := h.Bookings.FindOne(c.Request.Context(), store.Filter{"_id": id})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "find booking", "Booking not found"))
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateBooking stores the booking unless the patient already holds one for
// the same treatment on the same date, in which case that one is returned
// with success=false.
func (h *Handler) CreateBooking(c *gin.Context) {
	var booking models.Booking
	if !bindJSON(c, &booking) {
		return
	}
	booking.ID = primitive.NilObjectID

	ctx := c.Request.Context()
	key := store.Filter{
		"treatment": booking.Treatment,
		"date":      booking.Date,
		"patient":   booking.Patient,
	}

	unlock, err := h.locker.Lock(ctx, services.BookingLockKey(booking.Treatment, booking.Date, booking.Patient))
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "lock booking", ""))
		return
	}
	defer unlock()

	existing, err := h.Bookings.FindOne(ctx, key)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
		return
	case !errors.Is(err, store.ErrNotFound):
		h.fail(c, exceptions.FromStoreError(err, "find existing booking", ""))
		return
	}

	result, err := h.Bookings.InsertOne(ctx, booking)
	if errors.Is(err, store.ErrDuplicateKey) {
		// another instance won the race past the lock
		existing, err = h.Bookings.FindOne(ctx, key)
		if err != nil {
			h.fail(c, exceptions.FromStoreError(err, "reread duplicate booking", ""))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
		return
	}
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "insert booking", ""))
		return
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = id
	}
	h.notifier.BookingConfirmed(booking)
	h.log.Info("booking created",
		zap.String("treatment", booking.Treatment),
		zap.String("date", booking.Date),
		zap.String("patient", booking.Patient),
	)

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// PayBooking records the payment and marks the booking paid. The response is
// the update that was applied.
func (h *Handler) PayBooking(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var payment models.Payment
	if !bindJSON(c, &payment) {
		return
	}
	payment.ID = primitive.NilObjectID

	ctx := c.Request.Context()
	filter := store.Filter{"_id": id}

	booking, err := h.Bookings.FindOne(ctx, filter)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "find booking to pay", "Booking not found"))
		return
	}
	if payment.Appointment == "" {
		payment.Appointment = id.Hex()
	}
	if payment.Patient == "" {
		payment.Patient = booking.Patient
	}

	if _, err := h.Payments.InsertOne(ctx, payment); err != nil {
		h.fail(c, exceptions.FromStoreError(err, "insert payment", ""))
		return
	}

	set := store.Patch{"paid": true, "transactionId": payment.TransactionID}
	if _, err := h.Bookings.UpdateOne(ctx, filter, set, false); err != nil {
		h.fail(c, exceptions.FromStoreError(err, "mark booking paid", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"$set": set})
}

// DeleteBooking lets a patient cancel one of their own bookings.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	filter := store.Filter{"_id": id}

	booking, err := h.Bookings.FindOne(ctx, filter)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "find booking to delete", "Appointment not found"))
		return
	}

	email, _ := middleware.EmailFromContext(c)
	if booking.Patient != email {
		h.fail(c, exceptions.ErrForbidden("Forbidden access"))
		return
	}

	if _, err := h.Bookings.DeleteOne(ctx, filter); err != nil {
		h.fail(c, exceptions.FromStoreError(err, "delete booking", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted", "deletedAppointment": booking})
}
