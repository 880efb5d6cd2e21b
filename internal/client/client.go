// Package client talks to the asset REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assetdesk/internal/api"
	"assetdesk/internal/domain/asset"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog/log"
)

// ListParams are the query parameters of GET /assets. Page and size are
// always sent.
type ListParams struct {
	Page     int            `url:"page"`
	Size     int            `url:"size"`
	Sort     []string       `url:"sort,omitempty"`
	Category asset.Category `url:"category,omitempty"`
	Status   asset.Status   `url:"status,omitempty"`
	Query    string         `url:"q,omitempty"`
}

// normalize mirrors the server defaults so equal searches encode equally.
func (p ListParams) normalize() ListParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size < 1 {
		p.Size = 10
	}
	p.Query = strings.TrimSpace(p.Query)
	sorts := p.Sort[:0:0]
	for _, s := range p.Sort {
		if s = strings.TrimSpace(s); s != "" {
			sorts = append(sorts, s)
		}
	}
	p.Sort = sorts
	return p
}

// Encode returns the query string for p, without the leading '?'.
func (p ListParams) Encode() (string, error) {
	v, err := query.Values(p.normalize())
	if err != nil {
		return "", fmt.Errorf("encode list params: %w", err)
	}
	return v.Encode(), nil
}

// Client is a JSON client for the asset API
type Client struct {
	http       *http.Client
	baseURL    string
	maxRetries int
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, maxRetries int) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: API base URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second // default timeout
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		maxRetries: max(maxRetries, 0),
	}, nil
}

// List fetches one page of assets
func (c *Client) List(ctx context.Context, p ListParams) (*api.PageResponse, error) {
	qs, err := p.Encode()
	if err != nil {
		return nil, err
	}
	var out api.PageResponse
	if err := c.get(ctx, "/assets?"+qs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PrefetchNext fetches the page after current when it exists. It returns
// nil, nil on the last page.
func (c *Client) PrefetchNext(ctx context.Context, p ListParams, current *api.PageResponse) (*api.PageResponse, error) {
	if current == nil || current.Page+1 >= current.TotalPages {
		return nil, nil
	}
	p.Page = current.Page + 1
	return c.List(ctx, p)
}

// Get fetches one asset
func (c *Client) Get(ctx context.Context, id int64) (*asset.Asset, error) {
	var out asset.Asset
	if err := c.get(ctx, fmt.Sprintf("/assets/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a new asset
func (c *Client) Create(ctx context.Context, req api.UpsertRequest) (*asset.Asset, error) {
	var out asset.Asset
	if err := c.do(ctx, http.MethodPost, "/assets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an asset
func (c *Client) Update(ctx context.Context, id int64, req api.UpsertRequest) (*asset.Asset, error) {
	var out asset.Asset
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/assets/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an asset
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/assets/%d", id), nil, nil)
}

// get retries transport failures and 5xx responses with exponential backoff.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var b backoff.BackOff = backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(100*time.Millisecond),
		backoff.WithMaxElapsedTime(0),
	)
	b = backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxRetries)), ctx)

	return backoff.RetryNotify(func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("path", path).Dur("wait", wait).Msg("retrying asset API request")
	})
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().
		Str("method", method).
		Str("url", url).
		Msg("making HTTP request")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, raw)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
