package config

import (
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads, so test runs are
// insulated from the invoking shell.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"WIKIGRAB_WIKI_URL", "WIKIGRAB_USER_AGENT", "WIKIGRAB_HTTP_TIMEOUT",
		"WIKIGRAB_MAX_BODY_SIZE", "WIKIGRAB_LIMIT", "WIKIGRAB_CATEGORY",
		"WIKIGRAB_OUTPUT_DIR", "WIKIGRAB_MD_INPUT_DIR", "WIKIGRAB_MD_OUTPUT_DIR",
		"WIKIGRAB_MD_FRONT_MATTER", "WIKIGRAB_MD_EXTRACT", "WIKIGRAB_MIN_DELAY",
		"WIKIGRAB_MAX_DELAY", "WIKIGRAB_RATE_RPS", "WIKIGRAB_RATE_BURST",
		"WIKIGRAB_WEBHOOK_URL", "WIKIGRAB_WEBHOOK_SECRET", "WIKIGRAB_WEBHOOK_TIMEOUT",
		"WIKIGRAB_LOG_LEVEL", "WIKIGRAB_LOG_FORMAT",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Wiki.UserAgent != "wikigrab/1.0 (+https://github.com/use-agent/wikigrab)" {
		t.Errorf("UserAgent = %q", cfg.Wiki.UserAgent)
	}
	if cfg.Wiki.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Wiki.Timeout)
	}
	if cfg.Wiki.MaxBodyBytes != 10*1024*1024 {
		t.Errorf("MaxBodyBytes = %d, want 10 MB", cfg.Wiki.MaxBodyBytes)
	}
	if cfg.Download.Limit != 10 {
		t.Errorf("Limit = %d, want 10", cfg.Download.Limit)
	}
	if cfg.Download.OutputDir != "wiki_pages" {
		t.Errorf("OutputDir = %q, want wiki_pages", cfg.Download.OutputDir)
	}
	if cfg.Markdown.InputDir != "wiki_pages" || cfg.Markdown.OutputDir != "markdown_pages" {
		t.Errorf("Markdown dirs = %q -> %q", cfg.Markdown.InputDir, cfg.Markdown.OutputDir)
	}
	if cfg.Markdown.FrontMatter || cfg.Markdown.ExtractArticle {
		t.Error("Markdown extras should default to off")
	}
	if cfg.Throttle.MinDelay != 100*time.Millisecond || cfg.Throttle.MaxDelay != 500*time.Millisecond {
		t.Errorf("delay band = [%v, %v], want [100ms, 500ms]", cfg.Throttle.MinDelay, cfg.Throttle.MaxDelay)
	}
	if cfg.Throttle.RequestsPerSecond != 10 || cfg.Throttle.Burst != 1 {
		t.Errorf("rate floor = %v rps burst %d, want 10 rps burst 1", cfg.Throttle.RequestsPerSecond, cfg.Throttle.Burst)
	}
	if cfg.Webhook.URL != "" {
		t.Errorf("Webhook.URL = %q, want empty", cfg.Webhook.URL)
	}
	if cfg.Webhook.Timeout != 10*time.Second {
		t.Errorf("Webhook.Timeout = %v, want 10s", cfg.Webhook.Timeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %q/%q, want info/text", cfg.Log.Level, cfg.Log.Format)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIKIGRAB_WIKI_URL", "https://wiki.example.org/w")
	t.Setenv("WIKIGRAB_USER_AGENT", "custom-bot/2.0")
	t.Setenv("WIKIGRAB_HTTP_TIMEOUT", "45s")
	t.Setenv("WIKIGRAB_MAX_BODY_SIZE", "1048576")
	t.Setenv("WIKIGRAB_LIMIT", "25")
	t.Setenv("WIKIGRAB_CATEGORY", "Science")
	t.Setenv("WIKIGRAB_OUTPUT_DIR", "out")
	t.Setenv("WIKIGRAB_MD_FRONT_MATTER", "true")
	t.Setenv("WIKIGRAB_MIN_DELAY", "50ms")
	t.Setenv("WIKIGRAB_RATE_RPS", "2.5")
	t.Setenv("WIKIGRAB_RATE_BURST", "3")
	t.Setenv("WIKIGRAB_WEBHOOK_URL", "https://hooks.example.org/x")
	t.Setenv("WIKIGRAB_LOG_FORMAT", "json")

	cfg := Load()

	if cfg.Wiki.BaseURL != "https://wiki.example.org/w" {
		t.Errorf("BaseURL = %q", cfg.Wiki.BaseURL)
	}
	if cfg.Wiki.UserAgent != "custom-bot/2.0" {
		t.Errorf("UserAgent = %q", cfg.Wiki.UserAgent)
	}
	if cfg.Wiki.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", cfg.Wiki.Timeout)
	}
	if cfg.Wiki.MaxBodyBytes != 1048576 {
		t.Errorf("MaxBodyBytes = %d, want 1048576", cfg.Wiki.MaxBodyBytes)
	}
	if cfg.Download.Limit != 25 {
		t.Errorf("Limit = %d, want 25", cfg.Download.Limit)
	}
	if cfg.Download.Category != "Science" {
		t.Errorf("Category = %q, want Science", cfg.Download.Category)
	}
	if cfg.Download.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want out", cfg.Download.OutputDir)
	}
	if !cfg.Markdown.FrontMatter {
		t.Error("FrontMatter should be on")
	}
	if cfg.Throttle.MinDelay != 50*time.Millisecond {
		t.Errorf("MinDelay = %v, want 50ms", cfg.Throttle.MinDelay)
	}
	if cfg.Throttle.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v, want 2.5", cfg.Throttle.RequestsPerSecond)
	}
	if cfg.Throttle.Burst != 3 {
		t.Errorf("Burst = %d, want 3", cfg.Throttle.Burst)
	}
	if cfg.Webhook.URL != "https://hooks.example.org/x" {
		t.Errorf("Webhook.URL = %q", cfg.Webhook.URL)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIKIGRAB_LIMIT", "not-a-number")
	t.Setenv("WIKIGRAB_HTTP_TIMEOUT", "soon")
	t.Setenv("WIKIGRAB_MD_FRONT_MATTER", "maybe")
	t.Setenv("WIKIGRAB_RATE_RPS", "fast")

	cfg := Load()

	if cfg.Download.Limit != 10 {
		t.Errorf("Limit = %d, want default 10", cfg.Download.Limit)
	}
	if cfg.Wiki.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", cfg.Wiki.Timeout)
	}
	if cfg.Markdown.FrontMatter {
		t.Error("FrontMatter should fall back to false")
	}
	if cfg.Throttle.RequestsPerSecond != 10 {
		t.Errorf("RequestsPerSecond = %v, want default 10", cfg.Throttle.RequestsPerSecond)
	}
}
