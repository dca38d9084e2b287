package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store keeps the fingerprint of the last status published for each server.
// Entries expire after StatusTTL so an unchanged server is republished
// periodically.
type Store interface {
	Close() error
	LastFingerprint(serverID string) (string, bool, error)
	SaveFingerprint(serverID, fingerprint string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	StatusTTL       time.Duration
	CleanupInterval time.Duration
}

const (
	defaultStatusTTL       = 24 * time.Hour
	defaultCleanupInterval = time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = defaultStatusTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                                 { return nil }
func (noopStore) LastFingerprint(string) (string, bool, error) { return "", false, nil }
func (noopStore) SaveFingerprint(string, string) error         { return nil }
