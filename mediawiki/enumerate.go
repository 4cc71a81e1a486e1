package mediawiki

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/use-agent/wikigrab/models"
)

// batchLimit is the API-side page size cap for list queries.
const batchLimit = 500

// Enumerator yields up to limit unique non-redirect PageHandles by
// following continuation tokens. The sequence is lazy, finite and
// non-restartable: once Next returns false it stays exhausted, and the
// continuation state is never exposed.
//
// Usage follows the sql.Rows shape:
//
//	for e.Next(ctx) {
//		h := e.Page()
//		...
//	}
//	if err := e.Err(); err != nil {
//		...
//	}
type Enumerator struct {
	client     *Client
	classifier RedirectClassifier
	category   string // normalized; empty means all pages
	limit      int

	seen    map[string]struct{}
	pending []PageListing
	cont    map[string]string
	started bool
	done    bool
	err     error

	current models.PageHandle
	yielded int
	skipped int
	calls   int
}

// NewEnumerator builds an enumerator over all pages, or over one category
// when category is non-empty. classifier may be nil, in which case every
// handle is yielded unclassified and redirect handling falls to the
// fetcher's stub sniffing.
func NewEnumerator(client *Client, classifier RedirectClassifier, category string, limit int) *Enumerator {
	return &Enumerator{
		client:     client,
		classifier: classifier,
		category:   NormalizeCategory(category),
		limit:      limit,
		seen:       make(map[string]struct{}),
	}
}

// NormalizeCategory ensures a single "Category:" prefix on non-empty
// names; a prefix the caller already supplied is not doubled.
func NormalizeCategory(category string) string {
	c := strings.TrimSpace(category)
	if c == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(c), "category:") {
		return "Category:" + strings.TrimSpace(c[len("category:"):])
	}
	return "Category:" + c
}

// Next advances to the next eligible page. It returns false when limit
// non-redirect pages have been yielded, the source is exhausted, or an
// API call failed (see Err).
func (e *Enumerator) Next(ctx context.Context) bool {
	if e.done || e.err != nil {
		return false
	}
	for {
		if e.yielded >= e.limit {
			e.done = true
			return false
		}
		if len(e.pending) == 0 && !e.fill(ctx) {
			return false
		}

		entry := e.pending[0]
		e.pending = e.pending[1:]

		if _, dup := e.seen[entry.Title]; dup {
			continue
		}
		e.seen[entry.Title] = struct{}{}

		handle := models.PageHandle{Title: entry.Title, PageID: entry.PageID}
		if e.classifier != nil {
			redirect, err := e.classifier.IsRedirect(ctx, entry.Title)
			if err != nil {
				// Metadata unavailable; the fetcher applies the stub
				// fallback on the rendered content instead.
				slog.Warn("redirect check failed, deferring to content sniffing",
					"title", entry.Title, "error", err)
			} else {
				handle.Redirect = redirect
				handle.RedirectKnown = true
				if redirect {
					e.skipped++
					slog.Debug("skipping redirect", "title", entry.Title)
					continue
				}
			}
		}

		e.current = handle
		e.yielded++
		return true
	}
}

// fill loads the next continuation batch into pending. It returns false
// when the sequence ended, through exhaustion or an API failure.
func (e *Enumerator) fill(ctx context.Context) bool {
	for {
		if e.started && e.cont == nil {
			e.done = true
			return false
		}

		size := e.limit - e.yielded
		if size > batchLimit {
			size = batchLimit
		}

		params := url.Values{}
		if e.category != "" {
			params.Set("list", "categorymembers")
			params.Set("cmtitle", e.category)
			params.Set("cmlimit", strconv.Itoa(size))
			params.Set("cmtype", "page")
		} else {
			params.Set("list", "allpages")
			params.Set("aplimit", strconv.Itoa(size))
		}
		for k, v := range e.cont {
			params.Set(k, v)
		}

		resp, err := e.client.Query(ctx, params)
		if err != nil {
			e.err = err
			e.done = true
			return false
		}
		e.calls++
		e.started = true
		e.cont = resp.Continue

		batch := resp.AllPages
		if e.category != "" {
			batch = resp.CategoryMembers
		}
		e.pending = append(e.pending, batch...)
		if len(e.pending) > 0 {
			return true
		}
		// Empty page; loop draws the next batch, or ends when the
		// continuation token is gone.
	}
}

// Page returns the handle produced by the last successful Next.
func (e *Enumerator) Page() models.PageHandle { return e.current }

// Err returns the first API failure encountered, if any.
func (e *Enumerator) Err() error { return e.err }

// SkippedRedirects reports how many candidates were excluded as
// redirects; they never consume limit quota.
func (e *Enumerator) SkippedRedirects() int { return e.skipped }

// Calls reports how many list queries were issued. Zero with a non-nil
// Err means the very first call never went through.
func (e *Enumerator) Calls() int { return e.calls }
