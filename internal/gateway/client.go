// Package gateway is the single HTTP path to the storefront API. It
// attaches credentials, records metrics, and relays the out-of-band
// notification marker carried on response headers to the event bus.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/nashvel/convenience-store-sub000/config"
	"github.com/nashvel/convenience-store-sub000/internal/events"
	"github.com/nashvel/convenience-store-sub000/internal/metrics"
)

// NotificationHeader is the response header the API sets when an event
// fired server-side while handling an unrelated request. Its value is
// the bus topic to publish.
const NotificationHeader = "X-Notification-Event"

// DefaultTimeout bounds every API request.
const DefaultTimeout = 10 * time.Second

// TokenSource supplies the current bearer token, if a session exists.
type TokenSource func() (string, bool)

// Client wraps resty with the storefront API conventions.
type Client struct {
	rc      *resty.Client
	bus     *events.Bus
	token   TokenSource
	breaker *breakerWrapper
}

// Option configures a Client.
type Option func(*Client)

// WithBus sets the event bus notification markers are relayed to.
func WithBus(bus *events.Bus) Option {
	return func(c *Client) { c.bus = bus }
}

// WithTokenSource sets the bearer token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.rc.SetTimeout(d) }
}

// WithBreaker guards every request with a circuit breaker.
func WithBreaker(name string) Option {
	return func(c *Client) { c.breaker = newBreaker(name) }
}

// New builds a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		rc: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(DefaultTimeout).
			SetRetryCount(0), // call sites own their retry policy
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.token != nil {
			if tok, ok := c.token(); ok {
				req.SetHeader("Authorization", "Bearer "+tok)
			}
		}
		if req.Method != http.MethodGet {
			req.SetHeader("X-Request-ID", uuid.NewString())
		}
		return nil
	})

	c.rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		metrics.RequestsTotal.WithLabelValues(
			resp.Request.Method,
			resp.Request.RawRequest.URL.Path,
			fmt.Sprintf("%d", resp.StatusCode()),
		).Inc()
		metrics.RequestDuration.WithLabelValues(
			resp.Request.Method,
			resp.Request.RawRequest.URL.Path,
		).Observe(resp.Time().Seconds())

		// The marker rides on error responses too.
		if c.bus != nil {
			if topic := resp.Header().Get(NotificationHeader); topic != "" {
				c.bus.Publish(topic, nil)
			}
			if resp.StatusCode() == http.StatusUnauthorized {
				c.bus.Publish(events.TopicSessionExpired, nil)
			}
		}
		return nil
	})

	return c
}

// NewFromConfig builds a Client from loaded settings: base URL and
// request timeout always, the circuit breaker when enabled. Further
// options apply on top.
func NewFromConfig(cfg config.Config, opts ...Option) *Client {
	base := []Option{WithTimeout(cfg.RequestTimeout)}
	if cfg.BreakerEnabled {
		base = append(base, WithBreaker("storefront-api"))
	}
	return New(cfg.APIBaseURL, append(base, opts...)...)
}

// Get issues a GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE and decodes the response into out, if any.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	call := func() (any, error) {
		req := c.rc.R().SetContext(ctx)
		if body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(body)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}

		if resp.IsError() {
			return nil, &APIError{
				Status:  resp.StatusCode(),
				Message: serverMessage(resp.Body()),
			}
		}

		if out != nil && len(resp.Body()) > 0 {
			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return nil, fmt.Errorf("%s %s: failed to parse response: %w", method, path, err)
			}
		}
		return nil, nil
	}

	var err error
	if c.breaker != nil {
		_, err = c.breaker.execute(call)
		err = translateBreakerErr(c.breaker.name, err)
	} else {
		_, err = call()
	}

	if err != nil {
		log.WithFields(log.Fields{
			"method": method,
			"path":   path,
		}).Debug("API request failed: ", err)
	}
	return err
}
