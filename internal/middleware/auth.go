package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
)

const ctxEmail = "email"

type TokenVerifier interface {
	ValidateJWT(token string) (*utils.Claims, error)
}

type AccountFinder interface {
	FindOne(ctx context.Context, filter store.Filter) (models.Account, error)
}

// TokenGuard requires a bearer token. A missing header is a 401, anything
// wrong with the token itself is a 403.
func TokenGuard(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, exceptions.ErrUnauthorized("unAuthorized access"))
			return
		}

		var token string
		if parts := strings.Split(authHeader, " "); len(parts) > 1 {
			token = parts[1]
		}

		claims, err := tokens.ValidateJWT(token)
		if err != nil {
			abort(c, exceptions.ErrForbidden("Forbidden Access"))
			return
		}

		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// RoleGuard must run after TokenGuard. Callers without an account are
// treated like callers with the wrong role.
func RoleGuard(accounts AccountFinder, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := EmailFromContext(c)
		if !ok {
			abort(c, exceptions.ErrForbidden("forbidden"))
			return
		}

		account, err := accounts.FindOne(c.Request.Context(), store.Filter{"email": email})
		if errors.Is(err, store.ErrNotFound) {
			abort(c, exceptions.ErrForbidden("forbidden"))
			return
		}
		if err != nil {
			abort(c, exceptions.FromStoreError(err, "role guard: find account", "forbidden"))
			return
		}

		if account.Role != role {
			abort(c, exceptions.ErrForbidden("forbidden"))
			return
		}
		c.Next()
	}
}

// EmailFromContext returns the email TokenGuard verified for this request.
func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}

func abort(c *gin.Context, ce *exceptions.CustomError) {
	if ce.StatusCode >= 500 {
		_ = c.Error(ce)
	}
	c.AbortWithStatusJSON(ce.StatusCode, gin.H{"message": ce.ClientMessage})
}
