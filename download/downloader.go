// Package download drives one bounded, sequential, rate-limited run
// over a wiki: pages are enumerated and fetched one at a time and the
// cleaned fragments written to disk, with per-page failures recorded in
// the final report.
package download

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/use-agent/wikigrab/mediawiki"
	"github.com/use-agent/wikigrab/models"
)

// Downloader orchestrates one download run.
type Downloader struct {
	client  *mediawiki.Client
	fetcher *Fetcher
	store   *Store
}

// NewDownloader wires a Downloader from its collaborators.
func NewDownloader(client *mediawiki.Client, store *Store) *Downloader {
	return &Downloader{
		client:  client,
		fetcher: NewFetcher(client),
		store:   store,
	}
}

// Run downloads up to limit non-redirect pages, optionally restricted to
// category. Handles are processed strictly in enumeration order, one
// network call in flight at a time. Per-page failures are recorded and
// never abort the run; only a failure of the very first API call is
// fatal and returns a nil report.
func (d *Downloader) Run(ctx context.Context, limit int, category string) (*models.DownloadReport, error) {
	if limit <= 0 {
		return nil, models.NewWikiError(models.ErrCodeInvalidInput, "limit must be positive", nil)
	}

	start := time.Now()
	report := &models.DownloadReport{RunID: uuid.NewString()}

	classifier := &mediawiki.InfoClassifier{Client: d.client}
	enum := mediawiki.NewEnumerator(d.client, classifier, category, limit)

	slog.Info("download starting",
		"run_id", report.RunID,
		"endpoint", d.client.Source().Endpoint,
		"limit", limit,
		"category", category,
		"output", d.store.Dir(),
	)

	for enum.Next(ctx) {
		handle := enum.Page()
		report.Attempted++

		result := d.fetcher.Fetch(ctx, handle)
		if !result.OK() {
			if models.HasCode(result.Err, models.ErrCodeRedirect) {
				report.SkippedRedirects++
				slog.Info("skipping redirect", "title", handle.Title)
				continue
			}
			d.recordFailure(report, handle.Title, result.Err)
			continue
		}

		path, err := d.store.SaveHTML(result.Title, handle.PageID, result.HTML)
		if err != nil {
			d.recordFailure(report, handle.Title, err)
			continue
		}

		report.Succeeded++
		slog.Info("page saved", "title", handle.Title, "path", path)
	}

	report.SkippedRedirects += enum.SkippedRedirects()
	report.ElapsedMs = time.Since(start).Milliseconds()

	if err := enum.Err(); err != nil {
		if enum.Calls() == 0 {
			// The very first API call never went through: a
			// configuration problem, not a partial run.
			return nil, err
		}
		slog.Error("enumeration ended early", "run_id", report.RunID, "error", err)
		logSummary(report)
		return report, err
	}

	logSummary(report)
	return report, nil
}

func (d *Downloader) recordFailure(report *models.DownloadReport, title string, err error) {
	report.Failed++
	report.Failures = append(report.Failures, models.PageFailure{
		Title:  title,
		Reason: err.Error(),
	})
	slog.Warn("page failed", "title", title, "error", err)
}

func logSummary(r *models.DownloadReport) {
	slog.Info("download finished",
		"run_id", r.RunID,
		"attempted", r.Attempted,
		"succeeded", r.Succeeded,
		"failed", r.Failed,
		"skipped_redirects", r.SkippedRedirects,
		"elapsed_ms", r.ElapsedMs,
	)
}
