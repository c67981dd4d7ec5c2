package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.Users.FindMany(c.Request.Context(), store.Filter{})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "list users", ""))
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	result, err := h.Users.DeleteOne(c.Request.Context(), store.Filter{"email": c.Param("email")})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "delete user", ""))
		return
	}
	c.JSON(http.StatusOK, result)
}

// IsAdmin answers {admin:false} for unknown emails too.
func (h *Handler) IsAdmin(c *gin.Context) {
	user, err := h.Users.FindOne(c.Request.Context(), store.Filter{"email": c.Param("email")})
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.fail(c, exceptions.FromStoreError(err, "find user", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": err == nil && user.Role == models.RoleAdmin})
}

func (h *Handler) MakeAdmin(c *gin.Context) {
	h.grantRole(c, models.RoleAdmin)
}

func (h *Handler) MakeDoctor(c *gin.Context) {
	h.grantRole(c, models.RoleDoctor)
}

func (h *Handler) grantRole(c *gin.Context, role models.Role) {
	filter := store.Filter{"email": c.Param("email")}
	result, err := h.Users.UpdateOne(c.Request.Context(), filter, store.Patch{"role": string(role)}, false)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "grant role "+string(role), ""))
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpsertUser creates or updates the account for :email and hands back a fresh
// access token for it. The body is optional.
func (h *Handler) UpsertUser(c *gin.Context) {
	email := c.Param("email")

	var req models.AccountUpsert
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "Invalid request body", parseBindError(err, &req))
		return
	}

	patch := store.Patch{"email": email}
	if req.Name != "" {
		patch["name"] = req.Name
	}
	if req.Phone != "" {
		patch["phone"] = req.Phone
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if errors.Is(err, utils.ErrPasswordTooLong) {
			respondBadRequest(c, "Invalid request body", gin.H{"fields": []FieldError{{
				Field:   "password",
				Rule:    "max_bytes",
				Param:   "72",
				Message: "must be at most 72 bytes",
			}}})
			return
		}
		if err != nil {
			h.fail(c, exceptions.ErrInternal("hash password", err))
			return
		}
		patch["password"] = hash
	}

	result, err := h.Users.UpdateOne(c.Request.Context(), store.Filter{"email": email}, patch, true)
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "upsert user", ""))
		return
	}

	token, err := h.issueToken(email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "token": token})
}

func (h *Handler) CheckDoctorRole(c *gin.Context) {
	user, err := h.Users.FindOne(c.Request.Context(), store.Filter{"email": c.Param("email")})
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "find user", "User not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"isDoctor": user.Role == models.RoleDoctor})
}

func (h *Handler) issueToken(email string) (string, error) {
	if h.tokens == nil {
		return "", exceptions.ErrInternal("sign token", utils.ErrSecretNotConfigured)
	}
	token, err := h.tokens.GenerateJWT(email)
	if err != nil {
		return "", exceptions.ErrInternal("sign token", err)
	}
	return token, nil
}
