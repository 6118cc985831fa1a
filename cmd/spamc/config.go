package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Servers     []string `toml:"servers"`
	User        string   `toml:"user"`
	Timeout     string   `toml:"timeout"`
	Compress    bool     `toml:"compress"`
	MaxSessions int32    `toml:"max_sessions"`
}

type cliConfig struct {
	servers     []string
	user        string
	timeout     time.Duration
	compress    bool
	maxSessions int32
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		servers:     []string{"127.0.0.1:783"},
		timeout:     30 * time.Second,
		maxSessions: 4,
	}
}

// loadCLIConfig reads a TOML config file, keeping the defaults for keys the
// file does not define. An empty path returns the defaults.
func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("servers") && len(raw.Servers) > 0 {
		cfg.servers = raw.Servers
	}

	if meta.IsDefined("user") {
		cfg.user = strings.TrimSpace(raw.User)
	}

	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return cliConfig{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.timeout = d
	}

	if meta.IsDefined("compress") {
		cfg.compress = raw.Compress
	}

	if meta.IsDefined("max_sessions") {
		if raw.MaxSessions <= 0 {
			return cliConfig{}, fmt.Errorf("max_sessions must be positive, got %d", raw.MaxSessions)
		}
		cfg.maxSessions = raw.MaxSessions
	}

	return cfg, nil
}
