package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/exceptions"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"go.uber.org/zap"
)

// fail writes err as {"message": ...}. Server side failures are logged with
// their cause; the client only sees the generic message.
func (h *Handler) fail(c *gin.Context, err error) {
	ce := exceptions.As(err)
	if ce.StatusCode >= http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("request_id", middleware.RequestIDFromContext(c)),
			zap.String("route", c.FullPath()),
			zap.String("op", ce.DevMessage),
			zap.Error(ce.Err),
		)
	}
	c.AbortWithStatusJSON(ce.StatusCode, gin.H{"message": ce.ClientMessage})
}

func respondBadRequest(c *gin.Context, message string, details any) {
	body := gin.H{"message": message}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
