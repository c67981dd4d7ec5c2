package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetCart lists the cart of ?email=. Without an email the cart is empty.
func (h *Handler) GetCart(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, []models.CartItem{})
		return
	}

	items, err := h.Carts.FindMany(c.Request.Context(), store.Filter{"email": email})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list cart", ""))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var item models.CartItem
	if !bindJSON(c, &item) {
		return
	}
	item.ID = primitive.NilObjectID

	result, err := h.Carts.InsertOne(c.Request.Context(), item)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "insert cart item", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) DeleteCartItem(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.Carts.DeleteOne(c.Request.Context(), store.Filter{"_id": id})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "delete cart item", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// UpdateCartQuantity sets the quantity of one cart item and answers with the
// recomputed cart total.
func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	filter := store.Filter{"_id": id}

	item, err := h.Carts.FindOne(ctx, filter)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "find cart item", "Item not found"))
		return
	}

	updated, err := h.Carts.UpdateOne(ctx, filter, store.Patch{"quantity": *req.Quantity}, false)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "update cart quantity", ""))
		return
	}
	// deleted between the read and the update
	if updated.MatchedCount == 0 {
		h.fail(c, exceptions.ErrNotFound("Item not found"))
		return
	}
	item.Quantity = *req.Quantity

	scope := store.Filter{}
	if h.cartTotalPerOwner {
		scope = store.Filter{"email": item.Email}
	}
	cart, err := h.Carts.FindMany(ctx, scope)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list carts for total", ""))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Quantity updated",
		"updatedItem": item,
		"total":       services.CartTotal(cart),
	})
}
