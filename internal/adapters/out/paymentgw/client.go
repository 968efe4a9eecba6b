// Package paymentgw is the HTTP client for the payment provider. The
// provider's API is a thin intent lifecycle: create an intent for an
// amount, then capture or cancel it by ID. The client never retries; the
// durable task driving it owns retry policy.
package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/domain/model/kernel"
	"github.com/g-80/Food-Delivery-App-API-sub001/internal/core/ports"
)

const defaultRequestTimeout = 10 * time.Second

// Client implements ports.PaymentGateway against the provider's REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ ports.PaymentGateway = (*Client)(nil)

// NewClient creates a provider client for the given base URL.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL must not be empty")
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

type createIntentRequest struct {
	OrderID     string `json:"orderId"`
	AmountPence int64  `json:"amountPence"`
	Currency    string `json:"currency"`
}

type createIntentResponse struct {
	IntentID string `json:"intentId"`
}

// CreateIntent reserves the amount and returns the provider's intent ID.
func (c *Client) CreateIntent(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (string, error) {
	body := createIntentRequest{
		OrderID:     orderID.String(),
		AmountPence: amount.Pence(),
		Currency:    "GBP",
	}

	var response createIntentResponse
	if err := c.post(ctx, "/v1/intents", body, &response); err != nil {
		return "", err
	}
	if response.IntentID == "" {
		return "", fmt.Errorf("payment provider returned an empty intent id")
	}
	return response.IntentID, nil
}

// Capture settles a previously created intent.
func (c *Client) Capture(ctx context.Context, intentID string) error {
	return c.post(ctx, "/v1/intents/"+intentID+"/capture", nil, nil)
}

// Cancel voids a previously created intent.
func (c *Client) Cancel(ctx context.Context, intentID string) error {
	return c.post(ctx, "/v1/intents/"+intentID+"/cancel", nil, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("payment provider request: %w", err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("payment provider responded %d: %s", response.StatusCode, detail)
	}

	if out != nil {
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
