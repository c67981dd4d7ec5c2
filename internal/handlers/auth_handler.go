package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges an email and password for an access token. Accounts that
// never set a password through PUT /user/:email cannot sign in here.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Users.FindOne(c.Request.Context(), store.Filter{"email": req.Email})
	if errors.Is(err, store.ErrNotFound) {
		h.fail(c, exceptions.ErrUnauthorized("Invalid credentials"))
		return
	}
	if err != nil {
		h.fail(c, exceptions.FromStoreError(err, "find user for login", ""))
		return
	}

	if user.Password == "" || !utils.CheckPasswordHash(req.Password, user.Password) {
		h.log.Info("login rejected", zap.String("email", req.Email))
		h.fail(c, exceptions.ErrUnauthorized("Invalid credentials"))
		return
	}

	token, err := h.issueToken(user.Email)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
