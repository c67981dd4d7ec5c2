package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/middleware"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type Options struct {
	Env            string
	ServiceName    string
	Log            *zap.Logger
	Prom           *observability.Prom
	Metrics        http.Handler
	Tracing        bool
	AllowedOrigins []string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

func New(h *handlers.Handler, tokens middleware.TokenVerifier, opts Options) *gin.Engine {
	if opts.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.Prom != nil {
		r.Use(opts.Prom.GinHandleMiddleware())
	}
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware())
	}
	r.Use(middleware.Timeout(opts.RequestTimeout))

	authed := middleware.TokenGuard(tokens)
	admin := middleware.RoleGuard(h.Users, models.RoleAdmin)

	r.GET("/", h.Home)
	r.GET("/healthz", h.Healthz)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	// Menu & cart
	r.GET("/menu", h.GetMenu)
	r.POST("/menu", authed, admin, h.CreateMenuItem)
	r.PUT("/menu/:id", h.UpdateMenuItem)
	r.DELETE("/menu/:id", h.DeleteMenuItem)

	r.GET("/carts", h.GetCart)
	r.POST("/carts", h.AddToCart)
	r.DELETE("/carts/:id", h.DeleteCartItem)
	r.PATCH("/carts/:id", h.UpdateCartQuantity)

	r.POST("/create-payment-intent", authed, h.CreatePaymentIntent)

	// Services & reviews
	r.GET("/service", h.GetServices)
	r.GET("/available", h.GetAvailable)
	r.POST("/review", h.CreateReview)
	r.GET("/review", h.GetReviews)

	// Users
	r.POST("/login", h.Login)
	r.GET("/user", authed, h.GetUsers)
	r.DELETE("/user/:email", authed, admin, h.DeleteUser)
	r.PUT("/user/admin/:email", authed, admin, h.MakeAdmin)
	r.PUT("/user/doctor/:email", authed, admin, h.MakeDoctor)
	r.PUT("/user/:email", h.UpsertUser)
	r.GET("/admin/:email", h.IsAdmin)
	r.GET("/checkDoctorRole/:email", h.CheckDoctorRole)

	// Bookings
	r.GET("/api/appointments", h.GetAppointments)
	r.GET("/booking", authed, h.GetPatientBookings)
	r.GET("/booking/:id", authed, h.GetBooking)
	r.POST("/booking", h.CreateBooking)
	r.PATCH("/booking/:id", authed, h.PayBooking)
	r.DELETE("/booking/:id", authed, h.DeleteBooking)

	// Doctors
	r.GET("/doctor", h.GetDoctors)
	r.GET("/doctor/:id", h.GetDoctor)
	r.POST("/doctor", authed, admin, h.CreateDoctor)
	r.DELETE("/doctor/:email", authed, admin, h.DeleteDoctor)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
