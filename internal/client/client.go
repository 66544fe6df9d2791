// Package client provides an HTTP client for the propdb REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evcraddock/propdb/internal/property"
)

// Client is an HTTP client for the propdb API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListOptions controls filtering for ListProperties. Zero values mean no
// filter.
type ListOptions struct {
	MinPrice *float64
	MaxPrice *float64
	Query    string
	Limit    int
}

// ListProperties returns properties, optionally filtered.
func (c *Client) ListProperties(ctx context.Context, opts ListOptions) ([]*property.Property, error) {
	params := url.Values{}
	if opts.MinPrice != nil {
		params.Set("min_price", strconv.FormatFloat(*opts.MinPrice, 'f', -1, 64))
	}
	if opts.MaxPrice != nil {
		params.Set("max_price", strconv.FormatFloat(*opts.MaxPrice, 'f', -1, 64))
	}
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	path := "/api/properties"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var props []*property.Property
	if err := c.send(ctx, http.MethodGet, path, nil, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns a single property.
func (c *Client) GetProperty(ctx context.Context, id int64) (*property.Property, error) {
	var p property.Property
	if err := c.send(ctx, http.MethodGet, propertyPath(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty stores p and returns it with its assigned ID.
func (c *Client) CreateProperty(ctx context.Context, p *property.Property) (*property.Property, error) {
	var saved property.Property
	if err := c.send(ctx, http.MethodPost, "/api/properties", p, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ReplaceProperty overwrites every field of property id with p's values.
func (c *Client) ReplaceProperty(ctx context.Context, id int64, p *property.Property) (*property.Property, error) {
	var saved property.Property
	if err := c.send(ctx, http.MethodPut, propertyPath(id), p, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// PatchProperty applies a partial update to property id.
func (c *Client) PatchProperty(ctx context.Context, id int64, patch property.Patch) (*property.Property, error) {
	var saved property.Property
	if err := c.send(ctx, http.MethodPatch, propertyPath(id), patch, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteProperty removes a property.
func (c *Client) DeleteProperty(ctx context.Context, id int64) error {
	return c.send(ctx, http.MethodDelete, propertyPath(id), nil, nil)
}

// APIError is a non-2xx response from the server. A 404 matches
// property.ErrNotFound.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "server error: " + http.StatusText(e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return property.ErrNotFound
	}
	return nil
}

func propertyPath(id int64) string {
	return fmt.Sprintf("/api/properties/%d", id)
}

// send performs a request with an optional JSON body and decodes the
// response into result when it is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
