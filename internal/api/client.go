package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jask/foodboard/internal/food"
)

const foodsPath = "/foods"

// Client talks to the foods collection of a REST backend.
type Client struct {
	base      *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client requests go through. The client is
// copied, so WithTimeout never changes the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets a per-request timeout, whichever http.Client is used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New builds a client for the API rooted at baseURL, e.g. http://localhost:3333.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api: base url %q must be http or https", baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	c := &Client{base: u, http: &http.Client{}, userAgent: "foodboard"}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.http
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = &hc
	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.base.String() }

// List returns every food known to the backend, in response order.
func (c *Client) List(ctx context.Context) ([]food.Food, error) {
	var out []food.Food
	if err := c.do(ctx, http.MethodGet, foodsPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []food.Food{}
	}
	return out, nil
}

// Create stores d and returns the record with its server-assigned id.
func (c *Client) Create(ctx context.Context, d food.Draft) (food.Food, error) {
	var out food.Food
	if err := c.do(ctx, http.MethodPost, foodsPath, d, &out); err != nil {
		return food.Food{}, err
	}
	return out, nil
}

// Update replaces the food at id with f and returns what the server stored.
func (c *Client) Update(ctx context.Context, id int64, f food.Food) (food.Food, error) {
	var out food.Food
	if err := c.do(ctx, http.MethodPut, itemPath(id), f, &out); err != nil {
		return food.Food{}, err
	}
	return out, nil
}

// Remove deletes the food at id. Any response body is discarded.
func (c *Client) Remove(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id int64) string {
	return foodsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %s %s: encode body: %v", ErrRequestFailed, method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	u := *c.base
	u.Path += path
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %v", ErrRequestFailed, method, path, err)
	}
	return nil
}
