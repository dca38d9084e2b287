package poller

import (
	"context"

	"github.com/Adda-Baaj/fivem-status/pkg/fivem"
	"github.com/Adda-Baaj/fivem-status/pkg/publishers"
	"github.com/Adda-Baaj/fivem-status/pkg/servers"
)

// StatusFetcher reads a combined snapshot from one server. *fivem.Client satisfies it.
type StatusFetcher interface {
	Snapshot(ctx context.Context) (fivem.Snapshot, error)
	ServerAddress() string
}

// ClientFactory builds the fetcher for a configured server.
type ClientFactory func(srv servers.Server) (StatusFetcher, error)

// EventPublisher publishes status events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers the last published fingerprint per server.
type Deduper interface {
	LastFingerprint(serverID string) (string, bool, error)
	SaveFingerprint(serverID, fingerprint string) error
}
