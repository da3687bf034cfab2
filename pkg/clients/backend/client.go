package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
)

// Credentials supplies the auth material attached to every request.
type Credentials interface {
	Token() string
	CSRFToken() string
}

// Request describes one call against the inventory API.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Fallback is the message used when the server gives none, e.g. "Failed to fetch products".
	Fallback string
}

// Client is the single resty-backed transport shared by all service modules.
type Client struct {
	httpClient *resty.Client
	creds      Credentials
	csrfToken  string
	logger     *zap.Logger

	mu             sync.RWMutex
	onUnauthorized []func()
}

// NewClient builds a transport for the API at cfg.BaseURL.
func NewClient(cfg config.APIConfig, creds Credentials, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		creds:     creds,
		csrfToken: cfg.CSRFToken,
		logger:    logger,
	}

	c.httpClient = resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		OnBeforeRequest(c.authorize)

	return c
}

// OnUnauthorized subscribes fn to 401 responses. Subscribers own the session
// teardown; the transport only reports the event.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

func (c *Client) authorize(_ *resty.Client, r *resty.Request) error {
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			r.SetHeader("Authorization", "Bearer "+token)
		}
	}

	csrf := c.csrfToken
	if c.creds != nil && c.creds.CSRFToken() != "" {
		csrf = c.creds.CSRFToken()
	}
	if csrf != "" {
		r.SetHeader("X-CSRF-Token", csrf)
	}

	r.SetHeader("X-Request-ID", uuid.NewString())
	return nil
}

// Do executes req and returns the raw JSON body of a successful response.
// Failures are always returned as *APIError.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := c.httpClient.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	start := time.Now()
	resp, err := r.Execute(method, req.Path)
	if err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.Error(err))
		return nil, &APIError{Message: fallbackMessage(req), Err: err}
	}

	c.logger.Debug("api request completed",
		zap.String("method", method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", resp.Request.Header.Get("X-Request-ID")))

	if resp.StatusCode() == http.StatusUnauthorized {
		c.emitUnauthorized()
	}

	if resp.IsError() || resp.StatusCode() >= http.StatusBadRequest {
		apiErr := newAPIError(resp.StatusCode(), resp.Body(), fallbackMessage(req))
		if resp.StatusCode() != http.StatusNotFound {
			c.logger.Warn("api returned error",
				zap.String("method", method),
				zap.String("path", req.Path),
				zap.Int("status", resp.StatusCode()),
				zap.String("message", apiErr.Error()))
		}
		return nil, apiErr
	}

	return resp.Body(), nil
}

func (c *Client) emitUnauthorized() {
	c.mu.RLock()
	subscribers := append([]func(){}, c.onUnauthorized...)
	c.mu.RUnlock()

	c.logger.Warn("api rejected credentials, notifying session owner")
	for _, fn := range subscribers {
		fn()
	}
}

func fallbackMessage(req Request) string {
	if req.Fallback != "" {
		return req.Fallback
	}
	return fmt.Sprintf("Failed to %s %s", strings.ToLower(req.Method), req.Path)
}
