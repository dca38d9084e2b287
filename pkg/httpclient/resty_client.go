package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent identifies fivem-status to game servers and webhook sinks.
const DefaultUserAgent = "fivem-status/1.0"

// RestyClient issues the single-shot GETs the server client needs.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient returns a GET client bounded by timeout. Zero or negative
// means no client-side deadline beyond the request context.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newResty(timeout)}
}

// NewRestyHTTPClient returns the underlying resty client, for publishers that
// POST or PUT.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newResty(timeout)
}

func newResty(timeout time.Duration) *resty.Client {
	c := resty.New().
		SetHeader("User-Agent", DefaultUserAgent).
		SetRetryCount(0)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return restyResponse{resp}, nil
}

// restyResponse satisfies Response through the embedded resty methods.
type restyResponse struct{ *resty.Response }
