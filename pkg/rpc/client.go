package rpc

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/zigap/xphere-sdk-go/pkg/config"
	"github.com/zigap/xphere-sdk-go/pkg/enc"
)

// Client dispatches requests to the configured endpoint pool. It holds its
// own copy of the configuration and is safe for concurrent use.
type Client struct {
	cfg  config.Config
	doer Doer
	log  *zap.Logger

	requests *atomic.Uint64
	failures *atomic.Uint64
}

// Option customizes a Client.
type Option func(*Client)

// WithDoer replaces the HTTP client used for requests.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithLogger replaces the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New validates a copy of cfg and builds a client from it. A nil cfg selects
// the defaults.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	var own config.Config
	if cfg != nil {
		own = cfg.Clone()
	}
	if err := own.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:      own,
		doer:     &http.Client{},
		log:      zap.L(),
		requests: atomic.NewUint64(0),
		failures: atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() config.Config {
	return c.cfg.Clone()
}

// Endpoints returns the configured endpoints.
func (c *Client) Endpoints() []string {
	return append([]string(nil), c.cfg.Endpoints...)
}

// Stats reports how many requests the client sent and how many of them failed.
func (c *Client) Stats() (requests, failures uint64) {
	return c.requests.Load(), c.failures.Load()
}

// Fetch sends one request to a random configured endpoint. A response carrying
// an envelope is returned without error whatever its code; callers check
// Result.Code. Timeouts, malformed bodies and transport failures are returned
// as errors.
func (c *Client) Fetch(ctx context.Context, method, path string, payload enc.Object) (*Result, error) {
	if len(c.cfg.Endpoints) == 0 {
		return nil, ErrNoEndpoints
	}
	endpoint := c.cfg.Endpoints[rand.Intn(len(c.cfg.Endpoints))]
	r := c.do(ctx, endpoint, method, path, payload)
	if r.envelope {
		return r, nil
	}
	return r, r.Failure()
}

func (c *Client) Get(ctx context.Context, path string, payload enc.Object) (*Result, error) {
	return c.Fetch(ctx, MethodGet, path, payload)
}

func (c *Client) Post(ctx context.Context, path string, payload enc.Object) (*Result, error) {
	return c.Fetch(ctx, MethodPost, path, payload)
}

// do performs one roundtrip bounded by the request timeout and classifies
// the outcome. It never returns nil.
func (c *Client) do(ctx context.Context, endpoint, method, path string, payload enc.Object) *Result {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeouts.Request)
	defer cancel()

	start := time.Now()
	r := c.roundtrip(ctx, reqCtx, endpoint, method, path, payload)
	observeRequest(method, path, r, start)

	c.requests.Inc()
	if !r.envelope {
		c.failures.Inc()
		c.log.Debug("endpoint failed",
			zap.String("endpoint", endpoint),
			zap.String("path", path),
			zap.Error(r.Failure()))
	}
	return r
}

func (c *Client) roundtrip(parent, ctx context.Context, endpoint, method, path string, payload enc.Object) *Result {
	req, err := newRequest(ctx, endpoint, method, path, payload, c.cfg.Headers)
	if err != nil {
		return errorResult(endpoint, err)
	}

	inflightRequests.Inc()
	defer inflightRequests.Dec()

	resp, err := c.doer.Do(req)
	if err != nil {
		return c.transportFailure(parent, endpoint, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Debug("failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportFailure(parent, endpoint, err)
	}
	return classify(endpoint, resp.StatusCode, statusText(resp), body)
}

// transportFailure maps a deadline to the synthetic timeout result. A
// cancelled parent context is reported as is.
func (c *Client) transportFailure(parent context.Context, endpoint string, err error) *Result {
	if isTimeout(err) && parent.Err() != context.Canceled {
		return timeoutResult(endpoint)
	}
	if perr := parent.Err(); perr != nil {
		return errorResult(endpoint, perr)
	}
	return errorResult(endpoint, err)
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
