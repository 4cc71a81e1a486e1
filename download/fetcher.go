package download

import (
	"context"
	"fmt"

	"github.com/use-agent/wikigrab/cleaner"
	"github.com/use-agent/wikigrab/mediawiki"
	"github.com/use-agent/wikigrab/models"
)

// Fetcher retrieves and cleans the rendered HTML of single pages. Item
// failures stay inside the FetchResult; nothing propagates past here.
type Fetcher struct {
	client *mediawiki.Client
}

// NewFetcher builds a Fetcher over the given client.
func NewFetcher(client *mediawiki.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch resolves one handle into a cleaned fragment. Handles without
// authoritative redirect metadata are sniffed against the rendered
// content; a detected redirect comes back as a REDIRECT_PAGE failure.
func (f *Fetcher) Fetch(ctx context.Context, handle models.PageHandle) models.FetchResult {
	resp, err := f.client.Parse(ctx, handle.Title)
	if err != nil {
		return models.Failure(handle.Title, err)
	}

	if !handle.RedirectKnown && mediawiki.IsRedirectStub(resp.HTML) {
		return models.Failure(handle.Title, models.NewWikiError(
			models.ErrCodeRedirect,
			fmt.Sprintf("page %q is a redirect", handle.Title),
			nil,
		))
	}

	cleaned, err := cleaner.CleanFragment(resp.HTML, handle.Title)
	if err != nil {
		return models.Failure(handle.Title, models.NewWikiError(
			models.ErrCodeMalformed,
			fmt.Sprintf("clean fragment for %q", handle.Title),
			err,
		))
	}

	return models.Success(handle.Title, cleaned)
}
