package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) CreateReview(c *gin.Context) {
	var review models.Review
	if !bindJSON(c, &review) {
		return
	}
	review.ID = primitive.NilObjectID

	result, err := h.Reviews.InsertOne(c.Request.Context(), review)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "insert review", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetReviews(c *gin.Context) {
	reviews, err := h.Reviews.FindMany(c.Request.Context(), store.Filter{})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list reviews", ""))
		return
	}
	c.JSON(http.StatusOK, reviews)
}
