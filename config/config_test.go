package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv(configPathEnv, "")

	cfg := LoadConfig()

	if cfg.Port != "8080" || cfg.Simulation.Interval != 200*time.Millisecond || cfg.Simulation.MaxStep != 15 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Gemini.TextModel != "gemini-2.5-flash" || cfg.Gemini.ImageModel != "gemini-2.5-flash-image" {
		t.Fatalf("unexpected models %+v", cfg.Gemini)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestYAMLThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commander.yaml")
	yamlDoc := `
port: "9090"
gemini:
  apiKey: from-file
  textModel: gemini-custom
tiktok:
  clientKey: ck
simulation:
  interval: 50ms
  seed: 42
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg := LoadConfig()

	if cfg.Port != "9090" || cfg.Gemini.TextModel != "gemini-custom" || cfg.TikTok.ClientKey != "ck" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Gemini.APIKey != "from-env" {
		t.Fatalf("env should win over file, got %q", cfg.Gemini.APIKey)
	}
	if cfg.Simulation.Interval != 50*time.Millisecond || cfg.Simulation.Seed != 42 {
		t.Fatalf("simulation not merged: %+v", cfg.Simulation)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing GEMINI_API_KEY error")
	}

	cfg.Gemini.APIKey = "key"
	cfg.Slack.Token = "xoxb"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing SLACK_CHANNEL_ID error")
	}

	cfg.Slack.ChannelID = "C1"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !cfg.SlackEnabled() {
		t.Fatalf("expected slack enabled")
	}
}
