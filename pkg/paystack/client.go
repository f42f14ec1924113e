// Package paystack is a minimal client for the slice of the Paystack
// API this platform consumes: creating transactions, optionally split
// against a vendor subaccount.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fee bearer values accepted by the transaction initialize call.
const (
	BearerAccount    = "account"
	BearerSubaccount = "subaccount"
)

// Client talks to the Paystack REST API.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// NewClient creates a gateway client. The timeout bounds every call;
// a timed-out initiation leaves the local payment row pending and is
// resolved by a later webhook or the sweeper.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// InitializeRequest is the transaction creation payload. Amount is in
// minor currency units. Subaccount and Bearer are only sent for split
// payments.
type InitializeRequest struct {
	Reference   string                 `json:"reference"`
	Amount      int64                  `json:"amount"`
	Email       string                 `json:"email"`
	Currency    string                 `json:"currency,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Subaccount  string                 `json:"subaccount,omitempty"`
	Bearer      string                 `json:"bearer,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// InitializeResponse carries the fields the booking flow needs to hand
// the explorer off to the gateway checkout.
type InitializeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// envelope is the standard Paystack response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Initialize creates a gateway transaction for the given request.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode initialize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build initialize request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response (status %d): %w", httpResp.StatusCode, err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 || !env.Status {
		return nil, fmt.Errorf("gateway rejected transaction (status %d): %s", httpResp.StatusCode, env.Message)
	}

	var data InitializeResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to decode transaction data: %w", err)
	}
	return &data, nil
}
