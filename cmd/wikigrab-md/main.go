package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/use-agent/wikigrab/config"
	"github.com/use-agent/wikigrab/markdown"
	"github.com/use-agent/wikigrab/notify"
)

func main() {
	// ── 1. Load configuration (flags override environment) ─────────
	cfg := config.Load()

	input := flag.String("input", cfg.Markdown.InputDir, "input directory containing HTML files")
	output := flag.String("output", cfg.Markdown.OutputDir, "output directory for Markdown files")
	file := flag.String("file", "", "convert a single HTML file instead of a directory")
	frontMatter := flag.Bool("front-matter", cfg.Markdown.FrontMatter, "prepend a YAML front matter block to each file")
	extract := flag.Bool("extract", cfg.Markdown.ExtractArticle, "run article extraction on full HTML documents")
	flag.Usage = usage
	flag.Parse()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)

	conv := markdown.New(markdown.Options{
		FrontMatter:    *frontMatter,
		ExtractArticle: *extract,
	})

	// ── 3a. Single-file mode ────────────────────────────────────────
	if *file != "" {
		if err := convertOne(conv, *file, *output); err != nil {
			slog.Error("conversion failed", "file", *file, "error", err)
			os.Exit(1)
		}
		return
	}

	// ── 3b. Directory mode ──────────────────────────────────────────
	report, err := conv.ConvertAll(*input, *output)
	if err != nil {
		slog.Error("conversion failed", "input", *input, "error", err)
		os.Exit(1)
	}

	// ── 4. Optional webhook notification ────────────────────────────
	notifier := notify.New(cfg.Webhook)
	if notifier.Enabled() {
		if nerr := notifier.Deliver(context.Background(), "convert.completed", report.RunID, report); nerr != nil {
			slog.Warn("report delivery failed", "error", nerr)
		}
	}
}

// convertOne handles the single-file mode.
func convertOne(conv *markdown.Converter, src, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	unit := markdown.UnitFor(src, outputDir)
	skipped, err := conv.ConvertFile(unit)
	if err != nil {
		return err
	}
	if skipped {
		slog.Info("nothing to convert", "file", src)
		return nil
	}
	slog.Info("converted", "file", src, "target", unit.TargetPath)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: wikigrab-md [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Converts saved wiki HTML fragments into Markdown files.\n\n")
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
