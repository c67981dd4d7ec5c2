package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.Doctors.FindMany(c.Request.Context(), store.Filter{})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list doctors", ""))
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	doctor, err := h.Doctors.FindOne(c.Request.Context(), store.Filter{"_id": id})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "find doctor", "Doctor not found"))
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if !bindJSON(c, &doctor) {
		return
	}
	doctor.ID = primitive.NilObjectID

	result, err := h.Doctors.InsertOne(c.Request.Context(), doctor)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "insert doctor", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteDoctor removes the doctor profile with the given email.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	result, err := h.Doctors.DeleteOne(c.Request.Context(), store.Filter{"email": c.Param("email")})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "delete doctor", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}
