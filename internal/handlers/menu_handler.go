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

func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.Menu.FindMany(c.Request.Context(), store.Filter{})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list menu", ""))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if !bindJSON(c, &item) {
		return
	}
	item.ID = primitive.NilObjectID

	result, err := h.Menu.InsertOne(c.Request.Context(), item)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "insert menu item", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateMenuItem merges the given fields into the item. Sending values equal
// to what is stored counts as not found, same as a missing id.
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var req models.MenuItemUpdate
	if !bindJSON(c, &req) {
		return
	}

	patch := store.Patch{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Recipe != nil {
		patch["recipe"] = *req.Recipe
	}
	if req.Image != nil {
		patch["image"] = *req.Image
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}
	if req.Price != nil {
		patch["price"] = float64(*req.Price)
	}
	if len(patch) == 0 {
		respondBadRequest(c, "No update fields provided", nil)
		return
	}

	result, err := h.Menu.UpdateOne(c.Request.Context(), store.Filter{"_id": id}, patch, false)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "update menu item", ""))
		return
	}
	if result.ModifiedCount == 0 {
		h.fail(c, exceptions.ErrNotFound("Item not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, err := utils.ParseObjectID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.Menu.DeleteOne(c.Request.Context(), store.Filter{"_id": id})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "delete menu item", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}
