// Package payments wraps the MercadoPago checkout preference API.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"danstore_server/structs"

	"github.com/MonkyMars/gecho"
)

// Item is one line of a checkout preference. UnitPrice is a plain float
// because the processor requires a JSON number.
type Item struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type PreferenceRequest struct {
	Items               []Item   `json:"items"`
	BackURLs            BackURLs `json:"back_urls"`
	AutoReturn          string   `json:"auto_return"`
	StatementDescriptor string   `json:"statement_descriptor"`
	ExternalReference   string   `json:"external_reference"`
}

// Preference is the subset of the processor's response the server uses.
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// RejectedError carries the processor's own error body so the handler can
// pass it through to the client untouched.
type RejectedError struct {
	Status int
	Body   []byte
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("preference rejected with status %d", e.Status)
}

type Client struct {
	cfg    *structs.CheckoutConfig
	http   *http.Client
	logger *gecho.Logger
}

func NewClient(cfg *structs.CheckoutConfig, logger *gecho.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		logger: logger,
	}
}

// CreatePreference posts a checkout preference and returns the processor's
// redirect data. A non-2xx response becomes a RejectedError.
func (c *Client) CreatePreference(ctx context.Context, pref *PreferenceRequest) (*Preference, error) {
	payload, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preference: %w", err)
	}

	url := c.cfg.BaseURL + "/checkout/preferences"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Preference request failed", gecho.Field("error", err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read preference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("Preference rejected by processor",
			gecho.Field("status", resp.StatusCode),
			gecho.Field("body", string(body)),
		)
		return nil, &RejectedError{Status: resp.StatusCode, Body: body}
	}

	preference := &Preference{}
	if err := json.Unmarshal(body, preference); err != nil {
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}

	return preference, nil
}
