package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveStoreOpClassifiesErrors(t *testing.T) {
	p := NewProm(prometheus.NewRegistry())

	p.ObserveStoreOp("bookings", "find_one", nil, time.Millisecond)
	p.ObserveStoreOp("bookings", "find_one", fmt.Errorf("x: %w", store.ErrNotFound), time.Millisecond)
	p.ObserveStoreOp("bookings", "insert", fmt.Errorf("x: %w", store.ErrDuplicateKey), time.Millisecond)
	p.ObserveStoreOp("bookings", "find", context.DeadlineExceeded, time.Millisecond)
	p.ObserveStoreOp("bookings", "find", errors.New("boom"), time.Millisecond)

	assert.Equal(t, float64(0), testutil.ToFloat64(p.StoreErrors.WithLabelValues("bookings", "find_one", "other")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.StoreErrors.WithLabelValues("bookings", "insert", "duplicate_key")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.StoreErrors.WithLabelValues("bookings", "find", "timeout")))
	assert.Equal(t, float64(1), testutil.ToFloat64(p.StoreErrors.WithLabelValues("bookings", "find", "other")))
}

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewProm(prometheus.NewRegistry())

	r := gin.New()
	r.Use(p.GinHandleMiddleware())
	r.GET("/menu", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/menu", nil))
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(p.RequestsTotal.WithLabelValues(http.MethodGet, "/menu", "200")))
}
