package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Adda-Baaj/fivem-status/internal/logger"
	"github.com/Adda-Baaj/fivem-status/pkg/fivem"
	"github.com/Adda-Baaj/fivem-status/pkg/publishers"
	"github.com/Adda-Baaj/fivem-status/pkg/servers"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Service polls servers and publishes their status when it changes.
type Service struct {
	factory     ClientFactory
	publisher   EventPublisher
	store       Deduper
	log         logger.Logger
	concurrency int
	now         func() time.Time

	mu      sync.Mutex
	clients map[string]StatusFetcher
}

// NewService wires a poller. A nil store publishes every poll.
func NewService(factory ClientFactory, pub EventPublisher, log logger.Logger, store Deduper) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		factory:     factory,
		publisher:   pub,
		store:       store,
		log:         log,
		concurrency: defaultConcurrency,
		now:         time.Now,
		clients:     make(map[string]StatusFetcher),
	}
}

// DefaultClientFactory builds fivem clients using the server's timeout (or
// fallback) and headers.
func DefaultClientFactory(fallbackTimeout time.Duration, probe bool, log fivem.Logger) ClientFactory {
	return func(srv servers.Server) (StatusFetcher, error) {
		opts := []fivem.Option{
			fivem.WithTimeout(srv.Timeout(fallbackTimeout)),
			fivem.WithHeaders(srv.Headers),
			fivem.WithLogger(log),
		}
		if !probe {
			opts = append(opts, fivem.WithoutProbe())
		}
		client, err := fivem.New(srv.ClientConfig(), opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// Run polls every server once, concurrently. Per-server failures are logged
// and joined into the returned error.
func (s *Service) Run(ctx context.Context, srvs []servers.Server) error {
	if s == nil || s.factory == nil {
		return fmt.Errorf("poller service is not initialized")
	}
	if len(srvs) == 0 {
		return fmt.Errorf("no servers configured for polling")
	}

	errs := s.runAll(ctx, srvs)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, srvs []servers.Server) []error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for _, srv := range srvs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := s.pollServer(ctx, srv); err != nil {
				s.log.ErrorObj("server poll failed", "server_error", map[string]any{
					"server_id": srv.ID,
					"error":     err.Error(),
				})
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

func (s *Service) pollServer(ctx context.Context, srv servers.Server) error {
	client, err := s.clientFor(srv)
	if err != nil {
		return fmt.Errorf("build client for server %s: %w", srv.ID, err)
	}

	snap, pollErr := client.Snapshot(ctx)
	if pollErr != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.log.WarnObj("server unreachable", "server_poll", map[string]any{
			"server_id": srv.ID,
			"address":   client.ServerAddress(),
			"error":     pollErr.Error(),
		})
	}

	status := BuildStatus(srv, client.ServerAddress(), snap, pollErr, s.now())
	fingerprint := status.Fingerprint()

	if !s.changed(srv.ID, fingerprint) {
		s.log.DebugObj("server status unchanged", "server_poll", map[string]any{
			"server_id": srv.ID,
		})
		return nil
	}

	if s.publisher != nil {
		evt := publishers.NewEvent(srv.ID, srv.Name, status)
		delivered, err := s.publisher.Publish(ctx, evt)
		if err != nil && delivered == 0 {
			return fmt.Errorf("publish status for server %s: %w", srv.ID, err)
		}
		if err != nil {
			// The fingerprint stays unsaved so the next poll resends to every sink.
			s.log.WarnObj("status partially published", "publish_error", map[string]any{
				"server_id": srv.ID,
				"delivered": delivered,
				"error":     err.Error(),
			})
			return nil
		}
	}

	if s.store != nil {
		if err := s.store.SaveFingerprint(srv.ID, fingerprint); err != nil {
			s.log.WarnObj("status fingerprint save failed", "store_error", map[string]any{
				"server_id": srv.ID,
				"error":     err.Error(),
			})
		}
	}

	s.log.InfoObj("server status published", "server_status", map[string]any{
		"server_id":    srv.ID,
		"online":       status.Online,
		"player_count": status.PlayerCount,
		"max_players":  status.MaxPlayers,
	})
	return nil
}

// changed reports whether fingerprint differs from the last published one.
// Store errors are treated as a change so the status still goes out.
func (s *Service) changed(serverID, fingerprint string) bool {
	if s.store == nil {
		return true
	}
	last, found, err := s.store.LastFingerprint(serverID)
	if err != nil {
		s.log.WarnObj("status fingerprint lookup failed", "store_error", map[string]any{
			"server_id": serverID,
			"error":     err.Error(),
		})
		return true
	}
	return !found || last != fingerprint
}

// clientFor returns the cached fetcher for srv, building it on first use.
func (s *Service) clientFor(srv servers.Server) (StatusFetcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.clients[srv.ID]; ok {
		return c, nil
	}
	c, err := s.factory(srv)
	if err != nil {
		return nil, err
	}
	s.clients[srv.ID] = c
	return c, nil
}
