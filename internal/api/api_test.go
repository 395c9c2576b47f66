package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"os"

	"github.com/telcoflow/backoffice/internal/domain"
)

// fakeStore is an in-memory Store for handler tests. It applies the same
// LIMIT/OFFSET slicing the real store does, so pagination behavior can be
// asserted without PostgreSQL.
type fakeStore struct {
	customers     []domain.Customer
	subscriptions []domain.Subscription
	payments      []domain.Payment
	usage         []domain.Usage
	amounts       []domain.PaymentAmount

	listErr   error
	upsertErr error
}

func pageSlice[T any](rows []T, page, perPage int) []T {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	offset := (page - 1) * perPage
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func (f *fakeStore) ListCustomers(_ context.Context, page, perPage int) ([]domain.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return pageSlice(f.customers, page, perPage), nil
}

func (f *fakeStore) ListSubscriptions(_ context.Context, page, perPage int) ([]domain.Subscription, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return pageSlice(f.subscriptions, page, perPage), nil
}

func (f *fakeStore) ListPayments(_ context.Context, page, perPage int) ([]domain.Payment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return pageSlice(f.payments, page, perPage), nil
}

func (f *fakeStore) ListUsage(_ context.Context, page, perPage int) ([]domain.Usage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return pageSlice(f.usage, page, perPage), nil
}

func (f *fakeStore) ListPaymentAmounts(_ context.Context, page, perPage int) ([]domain.PaymentAmount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return pageSlice(f.amounts, page, perPage), nil
}

func (f *fakeStore) UpsertPaymentAmounts(_ context.Context, amounts []domain.PaymentAmount) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, pa := range amounts {
		replaced := false
		for i := range f.amounts {
			if f.amounts[i].CustomerID == pa.CustomerID {
				f.amounts[i].SumPayment = pa.SumPayment
				replaced = true
				break
			}
		}
		if !replaced {
			f.amounts = append(f.amounts, pa)
		}
	}
	return nil
}

var errStoreDown = errors.New("store down")

func newTestServer(store *fakeStore) *httptest.Server {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return httptest.NewServer(NewRouter(store, logger))
}
