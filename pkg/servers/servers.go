package servers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Adda-Baaj/fivem-status/pkg/fivem"
	"gopkg.in/yaml.v3"
)

// Package servers loads the list of FiveM servers to watch from YAML/JSON.

const defaultPort = 30120

// Server is one watched FiveM server.
type Server struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Host           string            `json:"host" yaml:"host"`
	Port           int               `json:"port" yaml:"port"`
	Enabled        *bool             `json:"enabled" yaml:"enabled"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	Tags           []string          `json:"tags" yaml:"tags"`
}

type configFile struct {
	Servers []Server `json:"servers" yaml:"servers"`
}

// Registry holds validated server entries keyed by id.
type Registry struct {
	mu      sync.RWMutex
	servers []Server
	idx     map[string]Server
}

// LoadRegistry loads the servers registry from a YAML or JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("servers file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open servers file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read servers file: %w", err)
	}

	parsed, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(parsed.Servers)
}

// NewRegistry sanitizes and validates the given entries.
func NewRegistry(entries []Server) (*Registry, error) {
	if len(entries) == 0 {
		return nil, errors.New("servers file contains no servers entries")
	}

	reg := &Registry{
		servers: make([]Server, 0, len(entries)),
		idx:     make(map[string]Server, len(entries)),
	}
	for i := range entries {
		s := sanitizeServer(entries[i])
		if err := validateServer(s); err != nil {
			return nil, fmt.Errorf("servers[%d]: %w", i, err)
		}
		if _, exists := reg.idx[s.ID]; exists {
			return nil, fmt.Errorf("duplicate server id %q", s.ID)
		}
		reg.servers = append(reg.servers, s)
		reg.idx[s.ID] = s
	}
	return reg, nil
}

type unmarshalFn func([]byte, any) error

func parseRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cf configFile
		if err := d.fn(data, &cf); err == nil {
			return cf, nil
		}
	}

	return configFile{}, errors.New("servers file format not recognized (expected YAML or JSON)")
}

func sanitizeServer(s Server) Server {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Host = strings.TrimSpace(s.Host)
	if s.Name == "" {
		s.Name = s.ID
	}
	if s.Port == 0 {
		s.Port = defaultPort
	}
	if s.Enabled == nil {
		def := true
		s.Enabled = &def
	}

	tags := s.Tags[:0:0]
	for _, t := range s.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	s.Tags = tags

	if len(s.Headers) > 0 {
		h := make(map[string]string, len(s.Headers))
		for k, v := range s.Headers {
			k, v = strings.TrimSpace(k), strings.TrimSpace(v)
			if k != "" && v != "" {
				h[k] = v
			}
		}
		s.Headers = h
	}
	return s
}

func validateServer(s Server) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if _, err := fivem.NewAddress(s.ClientConfig()); err != nil {
		return fmt.Errorf("server %q: %w", s.ID, err)
	}
	if s.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative for server %q", s.ID)
	}
	return nil
}

// ClientConfig returns the fivem client configuration for the server.
func (s Server) ClientConfig() fivem.Config {
	return fivem.Config{Host: s.Host, Port: s.Port}
}

// Timeout returns the per-request timeout, or fallback when unset.
func (s Server) Timeout(fallback time.Duration) time.Duration {
	if s.TimeoutSeconds <= 0 {
		return fallback
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// EnabledValue returns the enabled flag, defaulting to true.
func (s Server) EnabledValue() bool {
	if s.Enabled == nil {
		return true
	}
	return *s.Enabled
}

// All returns a copy of every configured server.
func (r *Registry) All() []Server {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Server, len(r.servers))
	copy(out, r.servers)
	return out
}

// Enabled returns the servers that should be polled.
func (r *Registry) Enabled() []Server {
	all := r.All()
	out := make([]Server, 0, len(all))
	for _, s := range all {
		if s.EnabledValue() {
			out = append(out, s)
		}
	}
	return out
}

// ByID returns the server with the given id.
func (r *Registry) ByID(id string) (Server, bool) {
	if r == nil {
		return Server{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Server{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.idx[id]
	return s, ok
}
