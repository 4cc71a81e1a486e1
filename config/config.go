package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Wiki     WikiConfig
	Download DownloadConfig
	Markdown MarkdownConfig
	Throttle ThrottleConfig
	Webhook  WebhookConfig
	Log      LogConfig
}

// WikiConfig controls the MediaWiki API client.
type WikiConfig struct {
	// BaseURL is the wiki root, e.g. "https://en.wikipedia.org/w".
	// The api.php endpoint is derived from it once per run.
	BaseURL string

	// UserAgent identifies this tool to the remote server.
	UserAgent string // default: "wikigrab/1.0 (+https://github.com/use-agent/wikigrab)"

	// Timeout is the transport-level timeout per request. The pipeline
	// adds no per-call deadline of its own.
	Timeout time.Duration // default: 30s

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 // default: 10 MB
}

// DownloadConfig controls one download run.
type DownloadConfig struct {
	// Limit is the maximum number of non-redirect pages to download.
	Limit int // default: 10

	// Category restricts enumeration to one category when non-empty.
	Category string

	// OutputDir receives one .html fragment per page.
	OutputDir string // default: "wiki_pages"
}

// MarkdownConfig controls HTML to Markdown conversion.
type MarkdownConfig struct {
	InputDir  string // default: "wiki_pages"
	OutputDir string // default: "markdown_pages"

	// FrontMatter prepends a YAML front matter block to each .md file.
	FrontMatter bool // default: false

	// ExtractArticle runs readability extraction when an input turns out
	// to be a full HTML document rather than a saved fragment.
	ExtractArticle bool // default: false
}

// ThrottleConfig controls the politeness delay between outbound API calls.
type ThrottleConfig struct {
	// MinDelay and MaxDelay bound the random pre-request delay.
	MinDelay time.Duration // default: 100ms
	MaxDelay time.Duration // default: 500ms

	// RequestsPerSecond is a sustained-rate floor under the jitter. With
	// the default delay band it adds no wait; it bites only when the
	// delays are tuned down. Zero disables it.
	RequestsPerSecond float64 // default: 10
	Burst             int     // default: 1
}

// WebhookConfig controls the optional post-run report notification.
type WebhookConfig struct {
	URL     string        // empty disables delivery
	Secret  string        // HMAC signing secret
	Timeout time.Duration // default: 10s
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Wiki: WikiConfig{
			BaseURL:      os.Getenv("WIKIGRAB_WIKI_URL"),
			UserAgent:    envOr("WIKIGRAB_USER_AGENT", "wikigrab/1.0 (+https://github.com/use-agent/wikigrab)"),
			Timeout:      envDurationOr("WIKIGRAB_HTTP_TIMEOUT", 30*time.Second),
			MaxBodyBytes: envInt64Or("WIKIGRAB_MAX_BODY_SIZE", 10*1024*1024),
		},
		Download: DownloadConfig{
			Limit:     envIntOr("WIKIGRAB_LIMIT", 10),
			Category:  os.Getenv("WIKIGRAB_CATEGORY"),
			OutputDir: envOr("WIKIGRAB_OUTPUT_DIR", "wiki_pages"),
		},
		Markdown: MarkdownConfig{
			InputDir:       envOr("WIKIGRAB_MD_INPUT_DIR", "wiki_pages"),
			OutputDir:      envOr("WIKIGRAB_MD_OUTPUT_DIR", "markdown_pages"),
			FrontMatter:    envBoolOr("WIKIGRAB_MD_FRONT_MATTER", false),
			ExtractArticle: envBoolOr("WIKIGRAB_MD_EXTRACT", false),
		},
		Throttle: ThrottleConfig{
			MinDelay:          envDurationOr("WIKIGRAB_MIN_DELAY", 100*time.Millisecond),
			MaxDelay:          envDurationOr("WIKIGRAB_MAX_DELAY", 500*time.Millisecond),
			RequestsPerSecond: envFloatOr("WIKIGRAB_RATE_RPS", 10.0),
			Burst:             envIntOr("WIKIGRAB_RATE_BURST", 1),
		},
		Webhook: WebhookConfig{
			URL:     os.Getenv("WIKIGRAB_WEBHOOK_URL"),
			Secret:  os.Getenv("WIKIGRAB_WEBHOOK_SECRET"),
			Timeout: envDurationOr("WIKIGRAB_WEBHOOK_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  envOr("WIKIGRAB_LOG_LEVEL", "info"),
			Format: envOr("WIKIGRAB_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
