package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected default listen :8080, got %s", cfg.Server.Listen)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected default read timeout 30s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.MaxBodySize != 100*1024 {
		t.Errorf("expected default max body size 102400, got %d", cfg.Server.MaxBodySize)
	}
	if cfg.Analyzer.AITimeout != 8*time.Second {
		t.Errorf("expected default ai timeout 8s, got %v", cfg.Analyzer.AITimeout)
	}
	if cfg.Analyzer.MinTextLength != 100 {
		t.Errorf("expected default min text length 100, got %d", cfg.Analyzer.MinTextLength)
	}
	if cfg.Cloudflare.NavigationTimeout != 30*time.Second {
		t.Errorf("expected default navigation timeout 30s, got %v", cfg.Cloudflare.NavigationTimeout)
	}
	if cfg.AI.MaxInputChars != 120000 {
		t.Errorf("expected default max input chars 120000, got %d", cfg.AI.MaxInputChars)
	}
	if cfg.Reputation.Weight != 0.7 {
		t.Errorf("expected default weight 0.7, got %v", cfg.Reputation.Weight)
	}
	if !cfg.Reputation.Enabled {
		t.Error("expected reputation lookups enabled by default")
	}
	if cfg.Cache.Driver != "sqlite" {
		t.Errorf("expected default cache driver sqlite, got %s", cfg.Cache.Driver)
	}
	if cfg.Cache.TTL != 14*24*time.Hour {
		t.Errorf("expected default cache ttl 14d, got %v", cfg.Cache.TTL)
	}
	if cfg.Cache.ConnectDelay != 1500*time.Millisecond {
		t.Errorf("expected default connect delay 1.5s, got %v", cfg.Cache.ConnectDelay)
	}
	if cfg.Slack.RiskThreshold != 70 {
		t.Errorf("expected default risk threshold 70, got %v", cfg.Slack.RiskThreshold)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := []byte(`server:
  listen: ":9090"
  writetimeout: 2m
analyzer:
  aitimeout: 5s
cache:
  driver: redis
  dsn: redis://localhost:6379/0
`)

	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":9090" {
		t.Errorf("expected listen :9090, got %s", cfg.Server.Listen)
	}
	if cfg.Server.WriteTimeout != 2*time.Minute {
		t.Errorf("expected write timeout 2m, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Analyzer.AITimeout != 5*time.Second {
		t.Errorf("expected ai timeout 5s, got %v", cfg.Analyzer.AITimeout)
	}
	if cfg.Cache.Driver != "redis" {
		t.Errorf("expected cache driver redis, got %s", cfg.Cache.Driver)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("expected unset values to keep defaults, got read timeout %v", cfg.Server.ReadTimeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("server:\n  listen: \":9090\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("RADAR_SERVER_LISTEN", ":7070")
	t.Setenv("RADAR_SLACK_RISKTHRESHOLD", "85")
	t.Setenv("RADAR_AI_OPENAIAPIKEY", "sk-test")
	t.Setenv("RADAR_CACHE_CONNECTDELAY", "250ms")

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":7070" {
		t.Errorf("expected env listen :7070, got %s", cfg.Server.Listen)
	}
	if cfg.Slack.RiskThreshold != 85 {
		t.Errorf("expected env risk threshold 85, got %v", cfg.Slack.RiskThreshold)
	}
	if cfg.AI.OpenAIAPIKey != "sk-test" {
		t.Errorf("expected env api key, got %q", cfg.AI.OpenAIAPIKey)
	}
	if cfg.Cache.ConnectDelay != 250*time.Millisecond {
		t.Errorf("expected env connect delay 250ms, got %v", cfg.Cache.ConnectDelay)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("server: [unterminated"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(&path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "RADAR_SERVER_LISTEN", want: "server.listen"},
		{in: "RADAR_AI_OPENAIAPIKEY", want: "ai.openaiapikey"},
		{in: "RADAR_CACHE_DSN", want: "cache.dsn"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, value := envKey(tt.in, "v")
			if got != tt.want {
				t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
			}

			if value != "v" {
				t.Errorf("expected value to pass through, got %v", value)
			}
		})
	}
}
