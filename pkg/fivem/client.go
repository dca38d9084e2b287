package fivem

import (
	"context"
	"time"

	"github.com/Adda-Baaj/fivem-status/pkg/httpclient"
)

// DefaultTimeout bounds each request when no HTTP client or timeout is supplied.
const DefaultTimeout = 10 * time.Second

// Client queries the HTTP JSON endpoints of one FiveM server. It holds no
// mutable state and is safe for concurrent use; every call fetches fresh data.
type Client struct {
	addr      Address
	baseURL   string
	http      httpclient.Client
	headers   map[string]string
	log       Logger
	probeDone chan struct{}
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	httpClient httpclient.Client
	timeout    time.Duration
	headers    map[string]string
	log        Logger
	probe      bool
}

// WithHTTPClient replaces the transport. WithTimeout is ignored when set.
func WithHTTPClient(c httpclient.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHeaders adds headers to every request.
func WithHeaders(h map[string]string) Option {
	return func(o *options) { o.headers = h }
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(l Logger) Option {
	return func(o *options) { o.log = l }
}

// WithoutProbe skips the background connectivity probe New normally starts.
func WithoutProbe() Option {
	return func(o *options) { o.probe = false }
}

// New validates cfg and returns a client for it. Unless WithoutProbe is given,
// a detached goroutine GETs the server root once and logs whether it answered;
// the outcome never reaches the caller.
func New(cfg Config, opts ...Option) (*Client, error) {
	addr, err := NewAddress(cfg)
	if err != nil {
		return nil, err
	}

	o := options{timeout: DefaultTimeout, probe: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.httpClient == nil {
		o.httpClient = httpclient.NewRestyClient(o.timeout)
	}
	if o.log == nil {
		o.log = noopLogger{}
	}

	c := &Client{
		addr:      addr,
		baseURL:   "http://" + addr.String(),
		http:      o.httpClient,
		headers:   o.headers,
		log:       o.log,
		probeDone: make(chan struct{}),
	}

	if o.probe {
		go c.probe()
	} else {
		close(c.probeDone)
	}
	return c, nil
}

// ServerAddress returns the "host:port" the client targets.
func (c *Client) ServerAddress() string {
	return c.addr.String()
}

// Address returns the validated target address.
func (c *Client) Address() Address { return c.addr }

// ProbeDone is closed once the construction-time probe has finished (or
// immediately when it was disabled).
func (c *Client) ProbeDone() <-chan struct{} { return c.probeDone }

// Ping GETs the server root and reports whether it answered with a 2xx.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, EndpointRoot, false)
	return err
}

func (c *Client) probe() {
	defer close(c.probeDone)

	if err := c.Ping(context.Background()); err != nil {
		c.log.WarnObj("could not connect to server", "server_probe", map[string]any{
			"address": c.ServerAddress(),
			"error":   err.Error(),
		})
		return
	}
	c.log.InfoObj("connected to server", "server_probe", map[string]any{
		"address": c.ServerAddress(),
	})
}
