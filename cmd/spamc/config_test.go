package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spamc.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCLIConfigDefaults(t *testing.T) {
	cfg, err := loadCLIConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.servers) != 1 || cfg.servers[0] != "127.0.0.1:783" {
		t.Fatalf("unexpected servers: %+v", cfg.servers)
	}
	if cfg.timeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.timeout)
	}
	if cfg.maxSessions != 4 {
		t.Fatalf("unexpected max sessions: %d", cfg.maxSessions)
	}
}

func TestLoadCLIConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
servers = ["10.0.0.1:783", "10.0.0.2:783"]
user = "alice"
timeout = "5s"
compress = true
max_sessions = 8
`)

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.servers) != 2 {
		t.Fatalf("unexpected servers: %+v", cfg.servers)
	}
	if cfg.user != "alice" {
		t.Fatalf("unexpected user: %q", cfg.user)
	}
	if cfg.timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.timeout)
	}
	if !cfg.compress {
		t.Fatalf("expected compression enabled")
	}
	if cfg.maxSessions != 8 {
		t.Fatalf("unexpected max sessions: %d", cfg.maxSessions)
	}
}

func TestLoadCLIConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `user = "bob"`)

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.user != "bob" {
		t.Fatalf("unexpected user: %q", cfg.user)
	}
	if cfg.timeout != 30*time.Second {
		t.Fatalf("timeout default lost: %v", cfg.timeout)
	}
}

func TestLoadCLIConfigRejectsBadValues(t *testing.T) {
	for name, contents := range map[string]string{
		"bad timeout":       `timeout = "soon"`,
		"zero max sessions": `max_sessions = 0`,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, contents)
			if _, err := loadCLIConfig(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}
