package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HTTPDirectory reaches a remotely deployed account directory over REST.
// Every round trip is bounded by the client timeout; a timeout or transport
// fault surfaces as ErrUnavailable and is never retried here.
type HTTPDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDirectory builds a directory client for the given base URL.
func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type accountPayload struct {
	ID       string          `json:"id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
}

// GetAccount fetches the latest committed account state.
func (d *HTTPDirectory) GetAccount(ctx context.Context, id string) (Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.accountURL(id), nil)
	if err != nil {
		return Account{}, err
	}
	return d.do(req)
}

// UpdateAccount applies a full-field balance/status overwrite.
func (d *HTTPDirectory) UpdateAccount(ctx context.Context, id string, update Update) (Account, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return Account{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, d.accountURL(id), bytes.NewReader(body))
	if err != nil {
		return Account{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return d.do(req)
}

func (d *HTTPDirectory) do(req *http.Request) (Account, error) {
	resp, err := d.client.Do(req)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Account{}, ErrAccountNotFound
	case resp.StatusCode >= 500:
		return Account{}, fmt.Errorf("%w: directory returned %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Account{}, fmt.Errorf("directory returned unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var out accountPayload
	if err := json.Unmarshal(payload, &out); err != nil {
		return Account{}, fmt.Errorf("decode directory response: %w", err)
	}
	return Account{ID: out.ID, Balance: out.Balance, Currency: out.Currency, Status: out.Status}, nil
}

func (d *HTTPDirectory) accountURL(id string) string {
	return fmt.Sprintf("%s/api/v1/accounts/%s", d.baseURL, url.PathEscape(id))
}
