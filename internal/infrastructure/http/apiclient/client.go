// Package apiclient is the typed HTTP client for the marketplace REST API.
//
// Outgoing requests pick up the session credential per request through the
// bound CredentialSource rather than through shared client defaults, so a
// request always carries the credential current at the moment it is sent.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Client talks to the marketplace API rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	binder     *AuthTransport
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// WithTimeout bounds every request. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTransport replaces the base transport. Tests use it to point the
// client at an httptest server's transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.transport = rt }
}

// New creates a Client. baseURL is the API origin, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	o := clientOptions{timeout: defaultTimeout, transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}
	binder := &AuthTransport{Base: o.transport}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   o.timeout,
			Transport: binder,
		},
		binder: binder,
	}
}

// BindCredentials attaches the source consulted for every outgoing request.
// Passing nil detaches it.
func (c *Client) BindCredentials(src CredentialSource) {
	c.binder.Bind(src)
}

// BaseURL returns the API origin the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// credential, when set, is sent instead of the bound source's value.
	credential string
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.credential != "" {
		req.Header.Set("Authorization", bearer(r.credential))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrMalformedResponse, r.method, r.path, err)
	}
	return nil
}

// errorBody accepts both envelopes seen from the API.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// decodeError turns a non-2xx response into *ports.APIError, keeping the
// server's message when the body carries one.
func decodeError(resp *http.Response) error {
	apiErr := &ports.APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
	}
	return apiErr
}

// IsStatus reports whether err is an API answer with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *ports.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
