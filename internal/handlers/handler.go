package handlers

import (
	"context"

	"github.com/harentsoaR/clinic-api/internal/models"
	"github.com/harentsoaR/clinic-api/internal/services"
	"github.com/harentsoaR/clinic-api/internal/store"
	"github.com/harentsoaR/clinic-api/internal/utils"
	"go.uber.org/zap"
)

// Stores holds one collection per resource. main wires either the MongoDB
// or the in-memory implementation.
type Stores struct {
	Services store.Collection[models.Service]
	Bookings store.Collection[models.Booking]
	Users    store.Collection[models.Account]
	Doctors  store.Collection[models.Doctor]
	Reviews  store.Collection[models.Review]
	Payments store.Collection[models.Payment]
	Menu     store.Collection[models.MenuItem]
	Carts    store.Collection[models.CartItem]
}

type Options struct {
	Tokens   *utils.TokenManager
	Checkout services.PaymentIntents
	Locker   services.Locker
	Notifier services.Notifier
	Log      *zap.Logger
	// Ping reports whether the backing store is reachable. Nil means always healthy.
	Ping func(ctx context.Context) error
	// CartTotalPerOwner limits the PATCH /carts/:id total to the item owner's cart.
	CartTotalPerOwner bool
}

type Handler struct {
	Stores

	tokens            *utils.TokenManager
	checkout          services.PaymentIntents
	locker            services.Locker
	notifier          services.Notifier
	log               *zap.Logger
	ping              func(ctx context.Context) error
	cartTotalPerOwner bool
}

func NewHandler(stores Stores, opts Options) *Handler {
	h := &Handler{
		Stores:            stores,
		tokens:            opts.Tokens,
		checkout:          opts.Checkout,
		locker:            opts.Locker,
		notifier:          opts.Notifier,
		log:               opts.Log,
		ping:              opts.Ping,
		cartTotalPerOwner: opts.CartTotalPerOwner,
	}
	if h.locker == nil {
		h.locker = services.NewLocalLocker()
	}
	if h.notifier == nil {
		h.notifier = services.NopNotifier{}
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	return h
}
