package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightbooking/internal/models"
	"github.com/dharmasatrya/flightbooking/internal/ratelimit"
	"github.com/dharmasatrya/flightbooking/internal/session"
	"github.com/dharmasatrya/flightbooking/internal/ui"
)

type Config struct {
	BaseURL string
	Prefix  string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Prefix:  "/api/v1",
		Timeout: 10 * time.Second,
	}
}

// Client is the gateway to the booking API. Authenticated calls carry the
// stored bearer token; a 401 clears it and sends the user to login.
type Client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	session *session.Session
	nav     ui.Navigator
	limiter *ratelimit.EndpointLimiter
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLimiter(l *ratelimit.EndpointLimiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithNavigator(nav ui.Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

func NewClient(cfg Config, sess *session.Session, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		http:    &http.Client{},
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + cfg.Prefix,
		timeout: cfg.Timeout,
		session: sess,
		log:     log.With(zap.String("component", "api")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method string
	path   string
	group  string
	query  url.Values
	body   interface{}
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, req, body, "application/json", true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.expire(ctx)
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, defaultRequestMessage)
	}
	return decodeBody(resp, out, req)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) send(ctx context.Context, req request, body io.Reader, contentType string, auth bool) (*http.Response, error) {
	paced, err := c.limiter.Wait(ctx, req.group)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", req.group, err)
	}
	if paced > 0 {
		c.log.Debug("request paced",
			zap.String("group", req.group),
			zap.String("path", req.path),
			zap.Duration("paced", paced),
		)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	if auth {
		token, ok, err := c.session.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		if ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", req.method),
			zap.String("path", req.path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}

	c.log.Debug("request completed",
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.Duration("paced", paced),
	)
	return resp, nil
}

func (c *Client) expire(ctx context.Context) {
	if err := c.session.Logout(ctx); err != nil {
		c.log.Error("failed to clear session", zap.Error(err))
	}
	if c.nav != nil {
		c.nav.Navigate(ui.PageLogin, nil)
	}
}

func decodeError(resp *http.Response, fallback string) error {
	data, _ := io.ReadAll(resp.Body)

	msg := fallback
	var e models.ErrorResponse
	if json.Unmarshal(data, &e) == nil {
		if detail := e.Message(); detail != "" {
			msg = detail
		}
	}
	return NewRequestError(resp.StatusCode, msg)
}

func decodeBody(resp *http.Response, out interface{}, req request) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", req.method, req.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.method, req.path, err)
	}
	return nil
}
