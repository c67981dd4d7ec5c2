package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
)

type paymentIntentRequest struct {
	Price models.Price `json:"price"`
}

func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req paymentIntentRequest
	if !bindJSON(c, &req) {
		return
	}
	amount, err := services.AmountInCents(float64(req.Price))
	if err != nil {
		respondBadRequest(c, "Price must be greater than zero and at most 999999.99", nil)
		return
	}
	if h.checkout == nil {
		h.fail(c, exceptions.ErrInternal("create payment intent", errors.New("payment processor not configured")))
		return
	}

	secret, err := h.checkout.CreatePaymentIntent(c.Request.Context(), amount)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "create payment intent", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
