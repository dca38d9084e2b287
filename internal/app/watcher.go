package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Adda-Baaj/fivem-status/internal/config"
	"github.com/Adda-Baaj/fivem-status/internal/logger"
	"github.com/Adda-Baaj/fivem-status/internal/poller"
	"github.com/Adda-Baaj/fivem-status/internal/storage"
	"github.com/Adda-Baaj/fivem-status/pkg/publishers"
	"github.com/Adda-Baaj/fivem-status/pkg/servers"
)

// Watcher is the status watcher runtime. It polls the configured FiveM
// servers on a fixed interval and publishes status changes.
type Watcher struct {
	cfg          *config.Config
	serverReg    *servers.Registry
	fanout       *publishers.Fanout
	pollService  *poller.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewWatcher builds a watcher runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serverReg, err := servers.LoadRegistry(cfg.ServersFile)
	if err != nil {
		return nil, fmt.Errorf("load servers registry: %w", err)
	}
	serverSummaries := make([]map[string]any, 0, len(serverReg.All()))
	for _, s := range serverReg.All() {
		serverSummaries = append(serverSummaries, map[string]any{
			"id":      s.ID,
			"address": s.ClientConfig(),
			"enabled": s.EnabledValue(),
		})
	}
	log.InfoObj("servers registry loaded", "servers_meta", map[string]any{
		"count":   len(serverSummaries),
		"servers": serverSummaries,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		StatusTTL:       cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"status_ttl_seconds":       int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	factory := poller.DefaultClientFactory(cfg.HTTPTimeout, cfg.ProbeOnStart, log)

	return &Watcher{
		cfg:          cfg,
		serverReg:    serverReg,
		fanout:       fanout,
		pollService:  poller.NewService(factory, fanout, log, store),
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.pollService == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	srvs := w.serverReg.Enabled()
	if len(srvs) == 0 {
		w.log.WarnObj("no enabled servers; watcher idle", "servers_file", w.cfg.ServersFile)
		<-ctx.Done()
		return ctx.Err()
	}

	w.log.InfoObj("watcher loop starting", "watcher_state", map[string]any{
		"servers_count":    len(srvs),
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
	})

	if err := w.runOnce(ctx, srvs); err != nil {
		w.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watcher loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx, srvs); err != nil {
				w.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

// runOnce polls every enabled server once.
func (w *Watcher) runOnce(ctx context.Context, srvs []servers.Server) error {
	start := time.Now()
	w.log.DebugObj("poll started", "poll_meta", map[string]any{
		"servers_count": len(srvs),
		"started_at":    start.UTC(),
	})
	if err := w.pollService.Run(ctx, srvs); err != nil {
		return err
	}
	w.log.DebugObj("poll completed", "poll_meta", map[string]any{
		"servers_count": len(srvs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

func (w *Watcher) close() {
	if w == nil {
		return
	}
	if w.store != nil {
		if err := w.store.Close(); err != nil {
			w.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if err := w.fanout.Close(); err != nil {
		w.log.ErrorObj("publishers close failed", "error", err)
	}
}
