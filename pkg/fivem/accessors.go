package fivem

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// Each accessor performs exactly one request. Missing fields come back with
// Present=false rather than an error.

// Players returns the connected players from players.json.
func (c *Client) Players(ctx context.Context) ([]Player, error) {
	body, err := c.playersEndpoint(ctx)
	if err != nil {
		return nil, err
	}
	players, err := parsePlayers(body)
	if err != nil {
		return nil, &TransportError{Endpoint: EndpointPlayers, URL: c.endpointURL(EndpointPlayers), Err: err}
	}
	return players, nil
}

// PlayerCount returns dynamic.json "clients".
func (c *Client) PlayerCount(ctx context.Context) (Field[int], error) {
	return dynamicField(ctx, c, "clients", intField)
}

// MaxPlayers returns dynamic.json "sv_maxclients".
func (c *Client) MaxPlayers(ctx context.Context) (Field[int], error) {
	return dynamicField(ctx, c, "sv_maxclients", intField)
}

// ServerName returns dynamic.json "hostname".
func (c *Client) ServerName(ctx context.Context) (Field[string], error) {
	return dynamicField(ctx, c, "hostname", stringField)
}

// MapName returns dynamic.json "mapname".
func (c *Client) MapName(ctx context.Context) (Field[string], error) {
	return dynamicField(ctx, c, "mapname", stringField)
}

// OneSync reports info.json "vars.onesync_enabled".
func (c *Client) OneSync(ctx context.Context) (Field[bool], error) {
	return infoField(ctx, c, "vars.onesync_enabled", boolField)
}

// Discord returns info.json "vars.discord".
func (c *Client) Discord(ctx context.Context) (Field[string], error) {
	return infoField(ctx, c, "vars.discord", stringField)
}

// Dynamic returns the whole dynamic.json document.
func (c *Client) Dynamic(ctx context.Context) (DynamicStatus, error) {
	body, err := c.dynamicEndpoint(ctx)
	if err != nil {
		return DynamicStatus{}, err
	}
	return parseDynamic(body), nil
}

// Info returns the whole info.json document.
func (c *Client) Info(ctx context.Context) (ServerInfo, error) {
	body, err := c.infoEndpoint(ctx)
	if err != nil {
		return ServerInfo{}, err
	}
	return parseInfo(body), nil
}

// Snapshot fetches all three endpoints concurrently. It fails as a whole if
// any request fails.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Address: c.ServerAddress()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := c.Dynamic(gctx)
		snap.Dynamic = d
		return err
	})
	g.Go(func() error {
		i, err := c.Info(gctx)
		snap.Info = i
		return err
	})
	g.Go(func() error {
		p, err := c.Players(gctx)
		snap.Players = p
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", c.ServerAddress(), err)
	}
	return snap, nil
}

func dynamicField[T any](ctx context.Context, c *Client, path string, project func(gjson.Result, string) Field[T]) (Field[T], error) {
	body, err := c.dynamicEndpoint(ctx)
	if err != nil {
		return Field[T]{}, err
	}
	return project(gjson.ParseBytes(body), path), nil
}

func infoField[T any](ctx context.Context, c *Client, path string, project func(gjson.Result, string) Field[T]) (Field[T], error) {
	body, err := c.infoEndpoint(ctx)
	if err != nil {
		return Field[T]{}, err
	}
	return project(gjson.ParseBytes(body), path), nil
}
