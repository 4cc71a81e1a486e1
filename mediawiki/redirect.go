package mediawiki

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RedirectClassifier decides whether a candidate title is a redirect
// page. An error means the classification could not be performed; callers
// treat the candidate as unclassified, not as a redirect.
type RedirectClassifier interface {
	IsRedirect(ctx context.Context, title string) (bool, error)
}

// InfoClassifier classifies via the API's prop=info redirect flag, the
// authoritative source of redirect metadata.
type InfoClassifier struct {
	Client *Client
}

func (ic *InfoClassifier) IsRedirect(ctx context.Context, title string) (bool, error) {
	info, err := ic.Client.PageInfo(ctx, title)
	if err != nil {
		return false, err
	}
	return info.Redirect, nil
}

// stubMaxLen bounds how large a fragment can be and still count as a
// redirect stub; real articles blow past this immediately.
const stubMaxLen = 2048

// IsRedirectStub reports whether a rendered fragment is a minimal
// redirect stub: MediaWiki's redirectMsg/redirectText markup, or a bare
// "#REDIRECT" marker wrapping a single link. Fallback classification for
// handles whose API metadata was unavailable.
func IsRedirectStub(fragment string) bool {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" || len(trimmed) > stubMaxLen {
		return false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return false
	}
	if doc.Find("div.redirectMsg, ul.redirectText, span.redirectText").Length() > 0 {
		return true
	}

	text := strings.TrimSpace(doc.Text())
	if !strings.HasPrefix(strings.ToUpper(text), "#REDIRECT") {
		return false
	}
	return doc.Find("a").Length() == 1
}
