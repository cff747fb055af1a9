package airtable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gojson "github.com/goccy/go-json"
)

// DefaultEndpoint is the Airtable web API root.
const DefaultEndpoint = "https://api.airtable.com/v0"

// Requester issues one HTTP request and decodes the JSON response into out
// (skipped when out is nil). It is the only transport capability this
// library consumes; swap it for a fake in tests or to add retry policies.
type Requester interface {
	Do(ctx context.Context, method, rawurl string, params url.Values, body, out any) error
}

// APIError surfaces a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("airtable: %s %s returned %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// HTTPRequester is the default net/http-backed Requester with bearer-token
// authentication.
type HTTPRequester struct {
	Token  string
	Client *http.Client
}

func (h *HTTPRequester) httpClient() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

// Do issues the request and decodes the response body into out through the
// JSON driver, so numbers arrive as json.Number exactly as the validator
// expects.
func (h *HTTPRequester) Do(ctx context.Context, method, rawurl string, params url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := gojson.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	if len(params) > 0 {
		rawurl += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, rawurl, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+h.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := h.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Method: method, URL: rawurl, Body: string(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return getJSONDriver().Decode(data, out)
}

// Client is the top-level handle: endpoint, transport, and the checker
// registry its resources validate through.
type Client struct {
	endpoint string
	req      Requester
	reg      *Registry
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API root, e.g. to point at a test server.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(endpoint, "/") }
}

// WithRequester replaces the transport.
func WithRequester(r Requester) Option {
	return func(c *Client) { c.req = r }
}

// WithRegistry replaces the checker registry; by default each Client owns a
// fresh one.
func WithRegistry(reg *Registry) Option {
	return func(c *Client) { c.reg = reg }
}

// NewClient returns a Client authenticated with the given personal access
// token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		req:      &HTTPRequester{Token: token},
		reg:      NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildURL joins path components onto the API root, escaping each component.
func (c *Client) BuildURL(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, c.endpoint)
	for _, p := range parts {
		escaped = append(escaped, url.PathEscape(p))
	}
	return strings.Join(escaped, "/")
}

// Registry exposes the client's checker registry.
func (c *Client) Registry() *Registry { return c.reg }

// Workspace returns the resource wrapper for the given workspace id
// (e.g. "wspmhESAta6clCCwF").
func (c *Client) Workspace(id string) *Workspace {
	return &Workspace{client: c, id: id}
}
