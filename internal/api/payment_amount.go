package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/telcoflow/backoffice/internal/domain"
)

// AggregateStore is the slice of the store behind the payment_amount
// endpoint: the paginated read form plus the upsert sink.
type AggregateStore interface {
	ListPaymentAmounts(ctx context.Context, page, perPage int) ([]domain.PaymentAmount, error)
	UpsertPaymentAmounts(ctx context.Context, amounts []domain.PaymentAmount) error
}

type PaymentAmountHandler struct {
	store  AggregateStore
	logger *slog.Logger
}

func NewPaymentAmountHandler(s AggregateStore, logger *slog.Logger) *PaymentAmountHandler {
	return &PaymentAmountHandler{store: s, logger: logger}
}

func (h *PaymentAmountHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)

	amounts, err := h.store.ListPaymentAmounts(r.Context(), page, perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list payment amounts")
		return
	}

	respondJSON(w, http.StatusOK, amounts)
}

type bulkUpsertResponse struct {
	Message string `json:"message"`
}

// BulkUpsert validates and applies a batch of aggregate rows submitted as
// {"data": [{"customer_id": ..., "sum_payment": ...}, ...]}. Validation
// failures reject the whole request with a specific message and commit
// nothing; the batch then applies atomically through the upsert sink.
func (h *PaymentAmountHandler) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	amounts, err := parseBulkEnvelope(r)
	if err != nil {
		h.logger.Warn("rejected bulk upsert", "reason", err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpsertPaymentAmounts(r.Context(), amounts); err != nil {
		h.logger.Error("failed to apply bulk upsert", "error", err, "rows", len(amounts))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("bulk upsert applied", "rows", len(amounts))
	respondJSON(w, http.StatusCreated, bulkUpsertResponse{Message: "Data inserted successfully"})
}

// parseBulkEnvelope decodes and validates the bulk-write envelope. On
// rejection it returns a domain.ValidationError whose message goes into
// the 400 response. Checks run in order: the body must be a JSON object
// with a data key, data must be an array, and every element must be an
// object carrying both customer_id and sum_payment.
func parseBulkEnvelope(r *http.Request) ([]domain.PaymentAmount, error) {
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		return nil, &domain.ValidationError{Msg: "Payload must be a JSON object with a 'data' key"}
	}

	rawData, ok := envelope["data"]
	if !ok {
		return nil, &domain.ValidationError{Msg: "Payload must be a JSON object with a 'data' key"}
	}

	if bytes.Equal(bytes.TrimSpace(rawData), []byte("null")) {
		return nil, &domain.ValidationError{Msg: "'data' key must contain a list of JSON objects"}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(rawData, &entries); err != nil {
		return nil, &domain.ValidationError{Msg: "'data' key must contain a list of JSON objects"}
	}

	amounts := make([]domain.PaymentAmount, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			return nil, &domain.ValidationError{Msg: "Each entry in 'data' must be a JSON object"}
		}
		if _, ok := fields["customer_id"]; !ok {
			return nil, &domain.ValidationError{Msg: "Each entry must include customer_id, sum_payment"}
		}
		if _, ok := fields["sum_payment"]; !ok {
			return nil, &domain.ValidationError{Msg: "Each entry must include customer_id, sum_payment"}
		}

		var pa domain.PaymentAmount
		if err := json.Unmarshal(entry, &pa); err != nil {
			return nil, &domain.ValidationError{Msg: "Each entry must include customer_id, sum_payment"}
		}
		amounts = append(amounts, pa)
	}

	return amounts, nil
}
