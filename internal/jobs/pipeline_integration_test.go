package jobs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/telcoflow/backoffice/internal/api"
	"github.com/telcoflow/backoffice/internal/domain"
)

// memStore backs a real router with an in-memory payment_amount table so
// the pipeline's HTTP push can be exercised end to end against the actual
// bulk-write handler.
type memStore struct {
	amounts []domain.PaymentAmount
}

func (m *memStore) ListCustomers(_ context.Context, _, _ int) ([]domain.Customer, error) {
	return []domain.Customer{}, nil
}

func (m *memStore) ListSubscriptions(_ context.Context, _, _ int) ([]domain.Subscription, error) {
	return []domain.Subscription{}, nil
}

func (m *memStore) ListPayments(_ context.Context, _, _ int) ([]domain.Payment, error) {
	return []domain.Payment{}, nil
}

func (m *memStore) ListUsage(_ context.Context, _, _ int) ([]domain.Usage, error) {
	return []domain.Usage{}, nil
}

func (m *memStore) ListPaymentAmounts(_ context.Context, _, _ int) ([]domain.PaymentAmount, error) {
	return m.amounts, nil
}

func (m *memStore) UpsertPaymentAmounts(_ context.Context, amounts []domain.PaymentAmount) error {
	for _, pa := range amounts {
		replaced := false
		for i := range m.amounts {
			if m.amounts[i].CustomerID == pa.CustomerID {
				m.amounts[i].SumPayment = pa.SumPayment
				replaced = true
				break
			}
		}
		if !replaced {
			m.amounts = append(m.amounts, pa)
		}
	}
	return nil
}

// End to end: aggregate rows flow through the pipeline job, over the wire
// into the bulk-write endpoint, and back out of the read form with the
// decimal value intact.
func TestPipeline_PushReachesAPI(t *testing.T) {
	apiStore := &memStore{}
	server := httptest.NewServer(api.NewRouter(apiStore, testLogger()))
	defer server.Close()

	aggregate := &fakeAggregateStore{
		aggregate: []domain.PaymentAmount{
			{CustomerID: 1, SumPayment: decimal.RequireFromString("7.5")},
		},
	}
	client := NewAPIClient(server.URL, testLogger())

	job := NewPipelineJob(aggregate, client, "migrations", true, testLogger())
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	resp, err := http.Get(server.URL + "/payment_amount")
	if err != nil {
		t.Fatalf("GET /payment_amount: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	got := strings.TrimSpace(string(raw))
	want := `[{"customer_id":1,"sum_payment":7.5}]`
	if got != want {
		t.Errorf("GET /payment_amount = %s, want %s", got, want)
	}
}

// Pushing rows that fail the endpoint's validation must fail the run with
// an upstream error, mirroring how the batch job treats any non-201.
func TestPipeline_PushRejectionFailsRun(t *testing.T) {
	// A server that rejects everything stands in for a misconfigured
	// endpoint.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
	}))
	defer server.Close()

	aggregate := &fakeAggregateStore{
		aggregate: []domain.PaymentAmount{{CustomerID: 1, SumPayment: decimal.NewFromInt(5)}},
	}
	client := NewAPIClient(server.URL, testLogger())

	job := NewPipelineJob(aggregate, client, "migrations", true, testLogger())
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected run to fail when the push is rejected")
	}

	// The direct store write still happened before the push failed.
	hasUpsert := false
	for _, call := range aggregate.calls {
		if call == "upsert" {
			hasUpsert = true
		}
	}
	if !hasUpsert {
		t.Error("store upsert should complete before the push attempt")
	}
}
