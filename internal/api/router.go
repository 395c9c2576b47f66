package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Store is the full storage surface the HTTP layer depends on. Handlers
// each take the narrow slice they need; the router wires one concrete
// store into all of them.
type Store interface {
	ResourceStore
	AggregateStore
}

// NewRouter creates and configures the HTTP router.
func NewRouter(s Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	resources := NewResourceHandler(s)
	amounts := NewPaymentAmountHandler(s, logger)

	r.Get("/health", HealthHandler())

	r.Get("/customers", resources.Customers)
	r.Get("/subscriptions", resources.Subscriptions)
	r.Get("/payments", resources.Payments)
	r.Get("/usage", resources.Usage)

	r.Get("/payment_amount", amounts.List)
	r.Post("/payment_amount", amounts.BulkUpsert)

	return r
}
