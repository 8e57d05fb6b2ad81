// Package api holds the HTTP client for the visitor backend.
//
// The backend does not distinguish failure modes in any machine-readable
// way, so neither does this client: an unreachable server, a non-2xx status
// and a malformed JSON body all surface as an error wrapping ErrCallFailed.
// Callers that need finer-grained semantics (not found, ineligible state)
// derive them from the response shape, not from the transport error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrCallFailed is wrapped by every error returned from Call.
var ErrCallFailed = errors.New("backend call failed")

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  slog.With("component", "api"),
	}
}

// errorBody is the shape Laravel-style backends use for failed requests.
type errorBody struct {
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// Call performs a request against the backend and decodes the JSON response
// into out. endpoint is appended to the configured base URL. body may be nil;
// when set it is JSON-encoded. out may be nil when the caller only cares
// about success.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrCallFailed, err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCallFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Header the Laravel backend expects on AJAX-style requests
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	c.logger.Debug("Calling backend", "method", method, "url", url)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Backend unreachable", "url", url, "error", err)
		return fmt.Errorf("%w: %v", ErrCallFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("Malformed response body", "url", url, "error", err)
		return fmt.Errorf("%w: decode response: %v", ErrCallFailed, err)
	}

	return nil
}

// statusError synthesizes an error message from a non-2xx response,
// appending the backend's message and validation errors when the body
// can be parsed.
func (c *Client) statusError(resp *http.Response) error {
	msg := fmt.Sprintf("api error: %d", resp.StatusCode)

	var detail errorBody
	if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
		if detail.Message != "" {
			msg += " - " + detail.Message
		}
		if len(detail.Errors) > 0 && string(detail.Errors) != "null" {
			msg += " - errors: " + string(detail.Errors)
		}
	}

	c.logger.Warn("Backend returned error", "status", resp.StatusCode, "message", msg)
	return fmt.Errorf("%w: %s", ErrCallFailed, msg)
}
