package servers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adda-Baaj/fivem-status/pkg/fivem"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write servers file: %v", err)
	}
	return path
}

func TestLoadRegistryYAML(t *testing.T) {
	path := writeFile(t, "servers.yaml", `
servers:
  - id: main
    name: Main RP
    host: 10.0.0.5
    port: 30120
    timeout_seconds: 3
    tags: [" rp ", ""]
  - id: dev
    host: dev.example.com
    enabled: false
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(reg.All()))
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "main" {
		t.Fatalf("expected only main enabled, got %#v", enabled)
	}

	dev, ok := reg.ByID("dev")
	if !ok {
		t.Fatalf("expected dev server")
	}
	if dev.Port != defaultPort || dev.Name != "dev" {
		t.Fatalf("defaults not applied: %+v", dev)
	}

	primary, _ := reg.ByID("main")
	if primary.Timeout(time.Minute) != 3*time.Second {
		t.Fatalf("Timeout = %v", primary.Timeout(time.Minute))
	}
	if dev.Timeout(time.Minute) != time.Minute {
		t.Fatalf("fallback timeout not used")
	}
	if len(primary.Tags) != 1 || primary.Tags[0] != "rp" {
		t.Fatalf("Tags = %#v", primary.Tags)
	}
	if primary.ClientConfig() != (fivem.Config{Host: "10.0.0.5", Port: 30120}) {
		t.Fatalf("ClientConfig = %+v", primary.ClientConfig())
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeFile(t, "servers.json", `{"servers":[{"id":"a","host":"127.0.0.1","port":30121}]}`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if s, ok := reg.ByID("a"); !ok || s.Port != 30121 {
		t.Fatalf("unexpected server %+v", s)
	}
}

func TestLoadRegistryRejectsDuplicatesAndBadAddresses(t *testing.T) {
	dup := writeFile(t, "servers.yaml", `
servers:
  - id: a
    host: 127.0.0.1
  - id: a
    host: 127.0.0.2
`)
	if _, err := LoadRegistry(dup); err == nil {
		t.Fatalf("expected duplicate id error")
	}

	noHost := writeFile(t, "servers.yaml", `
servers:
  - id: a
    port: 30120
`)
	_, err := LoadRegistry(noHost)
	if !errors.Is(err, fivem.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestLoadRegistryEmpty(t *testing.T) {
	if _, err := LoadRegistry(writeFile(t, "servers.yaml", "servers: []\n")); err == nil {
		t.Fatalf("expected error for empty registry")
	}
	if _, err := LoadRegistry("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
