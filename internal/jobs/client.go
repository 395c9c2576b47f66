package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/telcoflow/backoffice/internal/domain"
)

// APIClient calls back into the REST API: paginated reads of the raw
// resources for the extraction job, and the bulk-write push for the
// pipeline job.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewAPIClient(baseURL string, logger *slog.Logger) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchPage retrieves one page of a raw resource. It sends start_date and
// end_date covering the last windowDays days; the server currently accepts
// and ignores them, but the client keeps sending them so the contract
// holds if date filtering ever lands. Returns the raw response body and
// the number of records on the page.
func (c *APIClient) FetchPage(ctx context.Context, resource string, page, perPage, windowDays int) ([]byte, int, error) {
	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -windowDays)

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("start_date", startDate.Format("2006-01-02"))
	params.Set("end_date", endDate.Format("2006-01-02"))

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating %s request: %w", resource, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s page %d: %v: %w", resource, page, err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s response: %w", resource, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("resource fetch failed",
			"resource", resource,
			"page", page,
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return nil, 0, fmt.Errorf("fetching %s page %d: status %d: %w",
			resource, page, resp.StatusCode, domain.ErrUpstream)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, 0, fmt.Errorf("decoding %s page %d: %w", resource, page, err)
	}

	return body, len(records), nil
}

type pushEnvelope struct {
	Data []domain.PaymentAmount `json:"data"`
}

// PushPaymentAmounts submits aggregate rows through the bulk-write
// endpoint. A non-201 response is logged with status and body and fails
// the calling job run.
func (c *APIClient) PushPaymentAmounts(ctx context.Context, amounts []domain.PaymentAmount) error {
	payload, err := json.Marshal(pushEnvelope{Data: amounts})
	if err != nil {
		return fmt.Errorf("encoding payment amounts: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/payment_amount", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pushing payment amounts: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	// Keep a bounded slice of the response for the failure log.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusCreated {
		c.logger.Error("bulk-write push failed",
			"status_code", resp.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("pushing payment amounts: status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	c.logger.Info("bulk-write push accepted", "rows", len(amounts))
	return nil
}
