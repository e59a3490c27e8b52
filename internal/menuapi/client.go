package menuapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/Lixing-Zhang/menuboard/internal/models"
)

// Endpoint names, also used as metric labels.
const (
	EndpointCategories = "categories"
	EndpointMenus      = "menus"
)

const maxBodyBytes = 10 << 20

var (
	// ErrUnexpectedStatus matches any StatusError via errors.Is.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// StatusError is returned when the menu API answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code: %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Observer receives the outcome of every upstream call.
type Observer interface {
	ObserveUpstream(endpoint string, d time.Duration, err error)
}

// Client reads categories and menu items from the menu REST API.
// Identical concurrent requests share one round trip, which is cancelled once
// every caller waiting on it has given up.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	observer Observer
	logger   *slog.Logger
	group    singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight // keys with a round trip still running
}

// flight is one shared round trip and the callers waiting on it.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver reports call outcomes to o.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the logger used for upstream diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the API rooted at baseURL, e.g. http://localhost:8000/api/v1.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid menu api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid menu api url: %q is not absolute", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
		flights: make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Categories fetches the full category list.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, EndpointCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Menus fetches menu items, constrained to categoryID when it is non-nil.
func (c *Client) Menus(ctx context.Context, categoryID *int64) ([]models.MenuItem, error) {
	var query url.Values
	if categoryID != nil {
		query = url.Values{"category_id": {strconv.FormatInt(*categoryID, 10)}}
	}

	var menus []models.MenuItem
	if err := c.get(ctx, EndpointMenus, query, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

// Ping checks that the categories endpoint answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Categories(ctx)
	return err
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	target := c.baseURL.JoinPath(endpoint)
	target.RawQuery = query.Encode()
	key := target.String()

	c.mu.Lock()
	f, ok := c.flights[key]
	if !ok {
		// detached from the first caller so a joined caller keeps it alive
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		f = &flight{ctx: fctx, cancel: cancel}
		c.flights[key] = f
	}
	f.waiters++
	// while key is in flights the group holds a call for it, so this joins f
	ch := c.group.DoChan(key, func() (any, error) {
		defer c.settle(key, f)
		return c.fetch(f.ctx, endpoint, key)
	})
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		c.leave(key, f)
		return ctx.Err()
	case res := <-ch:
		c.leave(key, f)
		if res.Err != nil {
			return res.Err
		}
		return decodeInto(res.Val.([]byte), out, endpoint)
	}
}

// leave drops a waiter. The last one out cancels a round trip still running
// and forgets it, so the next caller starts afresh.
func (c *Client) leave(key string, f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f.waiters--
	if f.waiters == 0 && c.flights[key] == f {
		f.cancel()
		c.retire(key)
		c.logger.Debug("menu api request abandoned by all callers", "url", key)
	}
}

// settle runs when f's round trip returns.
func (c *Client) settle(key string, f *flight) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f.cancel()
	if c.flights[key] == f {
		c.retire(key)
	}
}

// retire must be called with c.mu held.
func (c *Client) retire(key string) {
	delete(c.flights, key)
	c.group.Forget(key)
}

func (c *Client) fetch(ctx context.Context, endpoint, target string) (body []byte, err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveUpstream(endpoint, time.Since(start), err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.RequestIDHeader, requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", endpoint, err)
	}

	c.logger.Debug("menu api response",
		"endpoint", endpoint,
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return body, nil
}

// decodeInto decodes per caller so callers sharing a round trip never share values.
func decodeInto(body []byte, out any, endpoint string) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", endpoint, err)
	}
	return nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
