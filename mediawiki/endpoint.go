package mediawiki

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/use-agent/wikigrab/models"
)

// Source is the immutable description of one wiki, resolved once per run.
type Source struct {
	BaseURL  string
	Endpoint string // derived api.php URL
}

// ResolveSource normalizes a wiki base URL into its api.php endpoint.
// Trailing slashes and an /index.php suffix are tolerated; a URL already
// pointing at api.php is kept as-is.
func ResolveSource(base string) (Source, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return Source{}, models.NewWikiError(models.ErrCodeInvalidInput, "wiki base URL is empty", nil)
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return Source{}, models.NewWikiError(models.ErrCodeInvalidInput, fmt.Sprintf("invalid wiki URL %q", base), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Source{}, models.NewWikiError(models.ErrCodeInvalidInput, fmt.Sprintf("unsupported URL scheme %q", u.Scheme), nil)
	}
	if u.Host == "" {
		return Source{}, models.NewWikiError(models.ErrCodeInvalidInput, fmt.Sprintf("wiki URL %q has no host", base), nil)
	}

	path := strings.TrimRight(u.Path, "/")
	path = strings.TrimSuffix(path, "/index.php")
	if !strings.HasSuffix(path, "/api.php") {
		path += "/api.php"
	}
	u.Path = path
	u.RawQuery = ""
	u.Fragment = ""

	return Source{BaseURL: base, Endpoint: u.String()}, nil
}
