package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Adda-Baaj/fivem-status/internal/config"
	"github.com/Adda-Baaj/fivem-status/pkg/publishers"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestWatcherPublishesStatusToWebhook(t *testing.T) {
	game := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dynamic.json":
			_, _ = w.Write([]byte(`{"clients":3,"sv_maxclients":32,"hostname":"Watcher","mapname":"m"}`))
		case "/info.json":
			_, _ = w.Write([]byte(`{"vars":{"onesync_enabled":true}}`))
		case "/players.json":
			_, _ = w.Write([]byte(`[{"name":"A"},{"name":"B"},{"name":"C"}]`))
		}
	}))
	defer game.Close()

	var (
		mu     sync.Mutex
		events []publishers.Event
	)
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err == nil {
			mu.Lock()
			events = append(events, evt)
			mu.Unlock()
		}
	}))
	defer hook.Close()

	host, port, _ := net.SplitHostPort(strings.TrimPrefix(game.URL, "http://"))
	dir := t.TempDir()
	cfg := &config.Config{
		ServersFile: writeConfigFile(t, dir, "servers.yaml",
			"servers:\n  - id: s1\n    host: "+host+"\n    port: "+port+"\n"),
		PublishersFile: writeConfigFile(t, dir, "publishers.yaml",
			"publishers:\n  - id: hook\n    type: http\n    http:\n      url: "+hook.URL+"\n"),
		PollInterval:           50 * time.Millisecond,
		HTTPTimeout:            time.Second,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(dir, "status.db"),
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	w, err := NewWatcher(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("expected exactly one status event for an unchanged server, got %d", len(events))
	}
	st := events[0].Status
	if events[0].ServerID != "s1" || !st.Online || st.PlayerCount == nil || *st.PlayerCount != 3 {
		t.Fatalf("unexpected event %+v", events[0])
	}
}

func TestNewWatcherRequiresConfig(t *testing.T) {
	if _, err := NewWatcher(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := NewWatcher(context.Background(), &config.Config{ServersFile: "/nonexistent.yaml"}, nil); err == nil {
		t.Fatalf("expected error for missing servers file")
	}
}
