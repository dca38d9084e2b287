package fivem

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (r *recordingLogger) InfoObj(msg, _ string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}
func (r *recordingLogger) DebugObj(string, string, interface{}) {}
func (r *recordingLogger) WarnObj(msg, _ string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, msg)
}
func (r *recordingLogger) ErrorObj(string, string, interface{}) {}

func (r *recordingLogger) snapshot() (infos, warns []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...), append([]string(nil), r.warns...)
}

// configFor splits an httptest URL into a client Config.
func configFor(t *testing.T, rawURL string) Config {
	t.Helper()
	host, portStr, err := net.SplitHostPort(strings.TrimPrefix(rawURL, "http://"))
	if err != nil {
		t.Fatalf("split %q: %v", rawURL, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("port %q: %v", portStr, err)
	}
	return Config{Host: host, Port: port}
}

// newFakeServer serves fixed bodies per path; unknown paths return 404.
func newFakeServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := []Config{
		{Host: "", Port: 30120},
		{Host: "   ", Port: 30120},
		{Host: "127.0.0.1", Port: 0},
		{Host: "127.0.0.1", Port: -1},
		{Host: "127.0.0.1", Port: 70000},
		{},
	}
	for _, cfg := range cases {
		c, err := New(cfg, WithoutProbe())
		if err == nil {
			t.Fatalf("New(%+v) expected error", cfg)
		}
		if c != nil {
			t.Fatalf("New(%+v) returned a client alongside the error", cfg)
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("New(%+v) error %v does not match ErrInvalidConfig", cfg, err)
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("New(%+v) error %T is not *ConfigError", cfg, err)
		}
	}
}

func TestServerAddressIsVerbatim(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{Host: "127.0.0.1", Port: 30120}, "127.0.0.1:30120"},
		{Config{Host: "play.example.com", Port: 1}, "play.example.com:1"},
		{Config{Host: "Example.COM", Port: 8080}, "Example.COM:8080"},
	}
	for _, tc := range cases {
		c, err := New(tc.cfg, WithoutProbe())
		if err != nil {
			t.Fatalf("New(%+v): %v", tc.cfg, err)
		}
		if got := c.ServerAddress(); got != tc.want {
			t.Fatalf("ServerAddress() = %q want %q", got, tc.want)
		}
	}
}

func TestProbeLogsSuccess(t *testing.T) {
	srv := newFakeServer(t, map[string]string{"/": "ok"})
	log := &recordingLogger{}

	c, err := New(configFor(t, srv.URL), WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	select {
	case <-c.ProbeDone():
	case <-time.After(5 * time.Second):
		t.Fatalf("probe did not finish")
	}

	infos, warns := log.snapshot()
	if len(infos) != 1 || infos[0] != "connected to server" || len(warns) != 0 {
		t.Fatalf("unexpected probe logs infos=%v warns=%v", infos, warns)
	}
}

func TestProbeFailureIsOnlyLogged(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := configFor(t, srv.URL)
	srv.Close()

	log := &recordingLogger{}
	c, err := New(cfg, WithLogger(log), WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("New must not fail when the server is unreachable: %v", err)
	}
	select {
	case <-c.ProbeDone():
	case <-time.After(5 * time.Second):
		t.Fatalf("probe did not finish")
	}

	infos, warns := log.snapshot()
	if len(warns) != 1 || warns[0] != "could not connect to server" || len(infos) != 0 {
		t.Fatalf("unexpected probe logs infos=%v warns=%v", infos, warns)
	}
}

func TestWithoutProbeSkipsRequest(t *testing.T) {
	var hits int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
	}))
	defer srv.Close()

	c, err := New(configFor(t, srv.URL), WithoutProbe())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	<-c.ProbeDone()

	mu.Lock()
	defer mu.Unlock()
	if hits != 0 {
		t.Fatalf("expected no requests, got %d", hits)
	}
}

func TestPingReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New(configFor(t, srv.URL), WithoutProbe())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = c.Ping(context.Background())
	var terr *TransportError
	if !errors.As(err, &terr) || terr.StatusCode != http.StatusServiceUnavailable || terr.Endpoint != EndpointRoot {
		t.Fatalf("expected 503 transport error, got %v", err)
	}
}

func TestConfigErrorNamesRejectedField(t *testing.T) {
	cases := []struct {
		cfg   Config
		field string
	}{
		{Config{Host: " ", Port: 30120}, "host"},
		{Config{Host: "127.0.0.1", Port: -1}, "port"},
		{Config{Host: "127.0.0.1", Port: 65536}, "port"},
	}
	for _, tc := range cases {
		_, err := NewAddress(tc.cfg)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("NewAddress(%+v) error %v is not *ConfigError", tc.cfg, err)
		}
		if cfgErr.Field != tc.field {
			t.Fatalf("NewAddress(%+v) field = %q, want %q", tc.cfg, cfgErr.Field, tc.field)
		}
	}

	if _, err := NewAddress(Config{Host: "127.0.0.1", Port: 65535}); err != nil {
		t.Fatalf("port 65535 should be accepted: %v", err)
	}
}
