package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/client/models"
	"github.com/meherkandukuri/vegtrack/internal/common"
	"github.com/sethvargo/go-retry"
)

// TokenSource supplies the current bearer token; an empty string means the
// caller is unauthenticated and no Authorization header is attached.
type TokenSource interface {
	Token() string
}

// HTTPClient implements Client against the REST API mounted under /api.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	expired func()
}

type Option func(*HTTPClient)

// WithHTTPDoer replaces the underlying *http.Client (tests, custom timeouts).
func WithHTTPDoer(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithSessionExpiredHandler registers a callback invoked whenever any call
// comes back 401. The engine treats this as an asynchronous external event:
// the failing unit of work fails, nothing else is touched.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *HTTPClient) { c.expired = fn }
}

// NewHTTPClient builds a client for the API at baseURL (e.g.
// "http://localhost:8080/api").
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do executes one request and decodes a JSON response into out (when out is
// non-nil). Status codes are mapped onto the shared sentinels.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		if c.expired != nil {
			c.expired()
		}
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, resp.StatusCode)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
}

// getJSON is do(GET) with a short retry on transient failures. Only reads are
// retried; create/update/delete run exactly once to avoid duplicate records.
func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(100*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if errors.Is(err, common.ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Search(ctx context.Context, q string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	path := "/vegetables?q=" + url.QueryEscape(q)
	if err := c.getJSON(ctx, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) ListCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := c.getJSON(ctx, "/vegetables", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, name, unit string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	body := map[string]string{"name": name, "unit": unit}
	if err := c.do(ctx, http.MethodPost, "/vegetables", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *HTTPClient) CreatePrice(ctx context.Context, catalogID int64, p PricePayload) (*models.PriceRecord, error) {
	var rec models.PriceRecord
	path := fmt.Sprintf("/vegetables/%d/prices", catalogID)
	if err := c.do(ctx, http.MethodPost, path, p, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) ListPrices(ctx context.Context, catalogID int64) ([]models.PriceRecord, error) {
	var resp struct {
		Prices []models.PriceRecord `json:"prices"`
	}
	path := fmt.Sprintf("/vegetables/%d/prices", catalogID)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Prices, nil
}

func (c *HTTPClient) UpdatePrice(ctx context.Context, remoteID int64, p PricePayload) (*models.PriceRecord, error) {
	var rec models.PriceRecord
	path := fmt.Sprintf("/prices/%d", remoteID)
	if err := c.do(ctx, http.MethodPut, path, p, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) DeletePrice(ctx context.Context, remoteID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/prices/%d", remoteID), nil, nil)
}

func (c *HTTPClient) Compare(ctx context.Context, catalogIDs []int64) (map[string][]models.PriceRecord, error) {
	var out map[string][]models.PriceRecord
	body := map[string][]int64{"vegetable_ids": catalogIDs}
	if err := c.do(ctx, http.MethodPost, "/compare", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ExportCSV(ctx context.Context, item models.CatalogItem) (*Export, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/vegetables/%d/export", c.baseURL, item.ID), nil)
	if err != nil {
		return nil, err
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	name := filenameFromHeader(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fmt.Sprintf("vegetable-%d-%s-%s-prices.csv", item.ID, slug(item.Name), slug(item.Unit))
	}
	return &Export{Filename: name, Data: data}, nil
}

func filenameFromHeader(cd string) string {
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}

// slug mirrors the server's filename sanitizer so the fallback matches what
// the server would have sent.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "veg"
	}
	return b.String()
}
