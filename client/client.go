// Package client provides a small REST client that decodes JSON responses
// straight into resourceez model types. It covers the common
// verb-plus-resource-path calls of a typical API client; anything beyond
// that (retries, caching, middleware) belongs to the caller's http.Client.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"

	"github.com/tjweldon/resourceez"
)

// An AuthHeader produces the value of the Authorization header for each
// request.
type AuthHeader func() string

// Bearer returns an AuthHeader carrying a bearer token.
func Bearer(token string) AuthHeader {
	return func() string { return "Bearer " + token }
}

// Basic returns an AuthHeader carrying a pre-encoded basic credential.
func Basic(token string) AuthHeader {
	return func() string { return "Basic " + token }
}

// A StatusError reports a response outside the 2xx range. Body holds up to
// the first 4 KiB of the response body for diagnostics.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: unexpected status %d", e.Code)
}

// Client issues requests against a base URL and constructs model instances
// from the responses.
type Client struct {
	base  *url.URL
	hc    *http.Client
	auth  AuthHeader
	copts []resourceez.Option
}

// An Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the underlying http.Client. The default is
// http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("client: http client must not be nil")
		}
		c.hc = hc
		return nil
	}
}

// WithAuth sets the AuthHeader attached to every request.
func WithAuth(a AuthHeader) Option {
	return func(c *Client) error {
		c.auth = a
		return nil
	}
}

// WithConstructOptions sets the resourceez options used when constructing
// model instances from response bodies.
func WithConstructOptions(opts ...resourceez.Option) Option {
	return func(c *Client) error {
		c.copts = opts
		return nil
	}
}

// New returns a Client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parsing base URL: %w", err)
	}
	c := &Client{base: u, hc: http.DefaultClient}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get fetches path and constructs out from the response body. out may be nil
// to discard the body.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON to path and constructs out from the response.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON to path and constructs out from the response.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch sends body as JSON to path and constructs out from the response.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE for path. out may be nil to discard the body.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// rawer is satisfied by every resourceez model instance.
type rawer interface {
	Raw() map[string]any
}

// encodeBody serializes a request body. A constructed model instance
// contributes its raw snapshot, so undeclared fields survive the round trip
// back to the server; everything else is encoded as plain JSON.
func encodeBody(body any) ([]byte, error) {
	if m, ok := body.(rawer); ok {
		if raw := m.Raw(); raw != nil {
			return json.Marshal(raw)
		}
	}
	return json.Marshal(body)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := encodeBody(body)
		if err != nil {
			return fmt.Errorf("client: encoding request body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		req.Header.Set("Authorization", c.auth())
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: b}
	}
	if out == nil {
		return nil
	}
	return resourceez.NewDecoder(resp.Body, c.copts...).Decode(out)
}
