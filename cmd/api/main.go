package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harentsoaR/clinic-api/internal/config"
	"github.com/harentsoaR/clinic-api/internal/handlers"
	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/observability"
	"github.com/harentsoaR/clinic-api/internal/router"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store/memstore"
	"github.com/harentsoaR/clinic-api/internal/store/mongostore"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const serviceName = "clinic-api"

func main() {
	cfg := config.Load()

	log, err := observability.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("build logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.AccessTokenSecret == "" {
		log.Warn("ACCESS_TOKEN_SECRET is not set; protected routes will reject every token")
	}

	tracing := false
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), serviceName, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing disabled", zap.Error(err))
		} else {
			tracing = true
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	var (
		stores handlers.Stores
		ping   func(ctx context.Context) error
	)
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store; data is lost on restart")
		stores = memoryStores()
	default:
		ctx, cancel := config.WithTimeout(10 * time.Second)
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		cancel()
		if err != nil {
			log.Fatal("mongo connection failed", zap.Error(err))
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}()

		db := client.Database(cfg.MongoDatabase)
		mongostore.EnsureIndexes(context.Background(), db, log)
		stores = mongoStores(db, prom)
		ping = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info("connected to mongo", zap.String("database", cfg.MongoDatabase))
	}

	var locker services.Locker = services.NewLocalLocker()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer func() { _ = rdb.Close() }()

		ctx, cancel := config.WithTimeout(3 * time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Warn("redis unreachable, booking locks stay in-process", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			locker = services.NewRedisLocker(rdb, 10*time.Second, log)
		}
	}

	tokens := utils.NewTokenManager(cfg.AccessTokenSecret, cfg.TokenTTL)

	h := handlers.NewHandler(stores, handlers.Options{
		Tokens:            tokens,
		Checkout:          services.NewStripePayments(cfg.StripeSecretKey),
		Locker:            locker,
		Notifier:          services.NewNotificationService(cfg.TextbeltAPIKey, log),
		Log:               log,
		Ping:              ping,
		CartTotalPerOwner: cfg.CartTotalPerOwner,
	})

	r := router.New(h, tokens, router.Options{
		Env:            cfg.Env,
		ServiceName:    serviceName,
		Log:            log,
		Prom:           prom,
		Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Tracing:        tracing,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.Int("port", cfg.Port), zap.String("env", cfg.Env), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	ctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	log.Info("shutdown complete")
}

func mongoStores(db *mongo.Database, obs mongostore.Observer) handlers.Stores {
	return handlers.Stores{
		Services: mongostore.NewCollection[models.Service](db, mongostore.CollectionServices, obs),
		Bookings: mongostore.NewCollection[models.Booking](db, mongostore.CollectionBookings, obs),
		Users:    mongostore.NewCollection[models.Account](db, mongostore.CollectionUsers, obs),
		Doctors:  mongostore.NewCollection[models.Doctor](db, mongostore.CollectionDoctors, obs),
		Reviews:  mongostore.NewCollection[models.Review](db, mongostore.CollectionReviews, obs),
		Payments: mongostore.NewCollection[models.Payment](db, mongostore.CollectionPayments, obs),
		Menu:     mongostore.NewCollection[models.MenuItem](db, mongostore.CollectionMenu, obs),
		Carts:    mongostore.NewCollection[models.CartItem](db, mongostore.CollectionCarts, obs),
	}
}

func memoryStores() handlers.Stores {
	return handlers.Stores{
		Services: memstore.NewCollection[models.Service](),
		Bookings: memstore.NewCollection[models.Booking](),
		Users:    memstore.NewCollection[models.Account](),
		Doctors:  memstore.NewCollection[models.Doctor](),
		Reviews:  memstore.NewCollection[models.Review](),
		Payments: memstore.NewCollection[models.Payment](),
		Menu:     memstore.NewCollection[models.MenuItem](),
		Carts:    memstore.NewCollection[models.CartItem](),
	}
}
