package fivem

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// Endpoint is a path relative to the server address.
type Endpoint string

const (
	EndpointRoot    Endpoint = ""
	EndpointDynamic Endpoint = "dynamic.json"
	EndpointInfo    Endpoint = "info.json"
	EndpointPlayers Endpoint = "players.json"
)

func (c *Client) endpointURL(ep Endpoint) string {
	return c.baseURL + "/" + string(ep)
}

// get performs one GET and returns the body. Any failure is a *TransportError.
func (c *Client) get(ctx context.Context, ep Endpoint, wantJSON bool) ([]byte, error) {
	url := c.endpointURL(ep)
	resp, err := c.http.Get(ctx, url, c.headers)
	if err != nil {
		return nil, &TransportError{Endpoint: ep, URL: url, Err: err}
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, &TransportError{
			Endpoint:   ep,
			URL:        url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("body: %s", responseSnippet(body)),
		}
	}
	if wantJSON && !gjson.ValidBytes(body) {
		return nil, &TransportError{
			Endpoint:   ep,
			URL:        url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%w: %s", ErrMalformedJSON, responseSnippet(body)),
		}
	}
	return body, nil
}

func (c *Client) dynamicEndpoint(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointDynamic, true)
}

func (c *Client) infoEndpoint(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointInfo, true)
}

func (c *Client) playersEndpoint(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointPlayers, true)
}
