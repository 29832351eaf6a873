// Package relay is the HTTP client for the bridging aggregator: one quote
// call, per-item status checks, and signature submission.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"relay-bridge/pkg/types"
)

const defaultTimeout = 30 * time.Second

// Client talks to one aggregator environment (testnet or mainnet base URL).
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates an aggregator client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the aggregator endpoint this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetQuote requests a quote. The call is not retried; a failed quote is
// surfaced immediately so the caller can re-request explicitly.
func (c *Client) GetQuote(ctx context.Context, req *types.QuoteRequest) (*types.Quote, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode quote request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/quote", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build quote request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Int64("originChainId", req.OriginChainID).
		Int64("destinationChainId", req.DestinationChainID).
		Str("amount", req.Amount).
		Msg("requesting quote")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var quote types.Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}

	// The aggregator reports the request id on the first step.
	if quote.RequestID == "" && len(quote.Steps) > 0 {
		quote.RequestID = quote.Steps[0].RequestID
	}

	return &quote, nil
}

// CheckStatus calls a step item's check endpoint once.
func (c *Client) CheckStatus(ctx context.Context, check *types.Check) (*types.CheckResult, error) {
	method := check.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.endpointURL(check.Endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var result types.CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}

	return &result, nil
}

// SubmitSignature posts a wallet signature to the endpoint declared on a
// signature step item.
func (c *Client) SubmitSignature(ctx context.Context, endpoint, signature string) error {
	body, err := json.Marshal(map[string]string{"signature": signature})
	if err != nil {
		return fmt.Errorf("encode signature: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build signature request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("signature request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	return nil
}

// endpointURL resolves a check/signature endpoint, which the aggregator
// returns as a path relative to its base URL.
func (c *Client) endpointURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

// readErrorBody extracts the upstream "message" field when the body is the
// aggregator's JSON error shape, otherwise returns the raw text.
func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 8<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var parsed map[string]interface{}
	if json.Unmarshal(raw, &parsed) == nil {
		if message, ok := parsed["message"].(string); ok && message != "" {
			return message
		}
		if errMsg, ok := parsed["error"].(string); ok && errMsg != "" {
			return errMsg
		}
	}

	return strings.TrimSpace(string(raw))
}
