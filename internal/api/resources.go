package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/telcoflow/backoffice/internal/domain"
)

const defaultPerPage = 10

// ResourceStore is the read-only slice of the store the reader endpoints
// use. The four raw tables are externally owned; this service never
// writes them.
type ResourceStore interface {
	ListCustomers(ctx context.Context, page, perPage int) ([]domain.Customer, error)
	ListSubscriptions(ctx context.Context, page, perPage int) ([]domain.Subscription, error)
	ListPayments(ctx context.Context, page, perPage int) ([]domain.Payment, error)
	ListUsage(ctx context.Context, page, perPage int) ([]domain.Usage, error)
}

type ResourceHandler struct {
	store ResourceStore
}

func NewResourceHandler(s ResourceStore) *ResourceHandler {
	return &ResourceHandler{store: s}
}

// parsePagination reads page and per_page from the query string. Missing,
// malformed, or non-positive values fall back to page 1 and the default
// page size. Date-range parameters sent by the extraction job are
// accepted and ignored.
func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = defaultPerPage

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			perPage = n
		}
	}

	return page, perPage
}

func (h *ResourceHandler) Customers(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	customers, err := h.store.ListCustomers(r.Context(), page, perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	respondJSON(w, http.StatusOK, customers)
}

func (h *ResourceHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	subscriptions, err := h.store.ListSubscriptions(r.Context(), page, perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list subscriptions")
		return
	}

	respondJSON(w, http.StatusOK, subscriptions)
}

func (h *ResourceHandler) Payments(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	payments, err := h.store.ListPayments(r.Context(), page, perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}

	respondJSON(w, http.StatusOK, payments)
}

func (h *ResourceHandler) Usage(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	usage, err := h.store.ListUsage(r.Context(), page, perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list usage")
		return
	}

	respondJSON(w, http.StatusOK, usage)
}
