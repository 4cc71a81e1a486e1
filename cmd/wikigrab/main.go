package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/use-agent/wikigrab/config"
	"github.com/use-agent/wikigrab/download"
	"github.com/use-agent/wikigrab/mediawiki"
	"github.com/use-agent/wikigrab/notify"
	"github.com/use-agent/wikigrab/throttle"
)

func main() {
	// ── 1. Load configuration (flags override environment) ─────────
	cfg := config.Load()

	limit := flag.Int("limit", cfg.Download.Limit, "maximum number of pages to download")
	category := flag.String("category", cfg.Download.Category, "restrict enumeration to one category")
	output := flag.String("output", cfg.Download.OutputDir, "output directory for downloaded pages")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 0 {
		cfg.Wiki.BaseURL = flag.Arg(0)
	}
	cfg.Download.Limit = *limit
	cfg.Download.Category = *category
	cfg.Download.OutputDir = *output

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)

	if cfg.Wiki.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "wikigrab: missing wiki URL")
		flag.Usage()
		os.Exit(1)
	}
	if cfg.Download.Limit <= 0 {
		slog.Error("limit must be positive", "limit", cfg.Download.Limit)
		os.Exit(1)
	}

	// ── 3. Build the throttled API client ───────────────────────────
	th := throttle.New(
		throttle.Jitter{Min: cfg.Throttle.MinDelay, Max: cfg.Throttle.MaxDelay},
		cfg.Throttle.RequestsPerSecond,
		cfg.Throttle.Burst,
	)
	client, err := mediawiki.NewClient(cfg.Wiki, th)
	if err != nil {
		slog.Error("invalid wiki URL", "url", cfg.Wiki.BaseURL, "error", err)
		os.Exit(1)
	}
	slog.Info("wikigrab starting",
		"endpoint", client.Source().Endpoint,
		"limit", cfg.Download.Limit,
		"category", cfg.Download.Category,
		"output", cfg.Download.OutputDir,
	)

	// ── 4. Prepare the artifact store ───────────────────────────────
	store, err := download.NewStore(cfg.Download.OutputDir)
	if err != nil {
		slog.Error("cannot prepare output directory", "dir", cfg.Download.OutputDir, "error", err)
		os.Exit(1)
	}

	// ── 5. Run the download ─────────────────────────────────────────
	ctx := context.Background()
	dl := download.NewDownloader(client, store)
	report, err := dl.Run(ctx, cfg.Download.Limit, cfg.Download.Category)
	if report == nil {
		slog.Error("download failed", "error", err)
		os.Exit(1)
	}

	// ── 6. Optional webhook notification ────────────────────────────
	notifier := notify.New(cfg.Webhook)
	if notifier.Enabled() {
		if nerr := notifier.Deliver(ctx, "download.completed", report.RunID, report); nerr != nil {
			slog.Warn("report delivery failed", "error", nerr)
		}
	}

	if err != nil {
		// Partial run: some artifacts exist but enumeration ended early.
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: wikigrab [flags] <wiki-url>\n\n")
	fmt.Fprintf(os.Stderr, "Downloads rendered pages from a MediaWiki installation as clean HTML fragments.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
