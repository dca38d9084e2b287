package httpclient

import "context"

// Response is the subset of an HTTP response the status client reads.
type Response interface {
	Body() []byte
	StatusCode() int
	IsSuccess() bool
}

// Client abstracts HTTP GETs so callers can inject fakes or a different transport.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
