package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/telcoflow/backoffice/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFetchPage_SendsPaginationAndWindow(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode([]map[string]any{{"customer_id": 1}, {"customer_id": 2}})
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, testLogger())

	body, count, err := client.FetchPage(context.Background(), "customers", 3, 50, 30)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}

	if gotPath != "/customers" {
		t.Errorf("path = %q, want /customers", gotPath)
	}
	if gotQuery["page"] != "3" || gotQuery["per_page"] != "50" {
		t.Errorf("pagination params = %v, want page=3 per_page=50", gotQuery)
	}
	if gotQuery["start_date"] == "" || gotQuery["end_date"] == "" {
		t.Errorf("date window params missing: %v", gotQuery)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if len(body) == 0 {
		t.Error("body should carry the raw page payload")
	}
}

func TestFetchPage_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, testLogger())

	_, _, err := client.FetchPage(context.Background(), "payments", 1, 10, 30)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestFetchPage_UnreachableHost(t *testing.T) {
	client := NewAPIClient("http://127.0.0.1:1", testLogger())

	_, _, err := client.FetchPage(context.Background(), "usage", 1, 10, 30)
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestPushPaymentAmounts_Success(t *testing.T) {
	var gotBody []byte
	var gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, 4096)
		n, _ := r.Body.Read(buf)
		gotBody = buf[:n]
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Data inserted successfully"}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, testLogger())

	amounts := []domain.PaymentAmount{
		{CustomerID: 1, SumPayment: decimal.RequireFromString("7.5")},
	}
	if err := client.PushPaymentAmounts(context.Background(), amounts); err != nil {
		t.Fatalf("PushPaymentAmounts: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}

	want := `{"data":[{"customer_id":1,"sum_payment":7.5}]}`
	if string(gotBody) != want {
		t.Errorf("body = %s, want %s", gotBody, want)
	}
}

func TestPushPaymentAmounts_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Payload must be a JSON object with a 'data' key"}`))
	}))
	defer server.Close()

	client := NewAPIClient(server.URL, testLogger())

	err := client.PushPaymentAmounts(context.Background(), []domain.PaymentAmount{{CustomerID: 1}})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}
