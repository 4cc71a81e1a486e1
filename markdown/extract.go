package markdown

import (
	"log/slog"
	nurl "net/url"
	"path/filepath"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// looksLikeDocument reports whether the input is a complete HTML document
// rather than a saved fragment. Fragments written by the downloader never
// carry a document shell.
func looksLikeDocument(s string) bool {
	head := strings.ToLower(s[:min(len(s), 1024)])
	return strings.Contains(head, "<!doctype") ||
		strings.Contains(head, "<html") ||
		strings.Contains(head, "<body")
}

// extractArticle runs readability on a full document and returns its main
// content. On failure the original input is returned so conversion still
// has something to work with.
func extractArticle(doc, path string) string {
	pageURL := &nurl.URL{Scheme: "file", Path: filepath.ToSlash(path)}

	article, err := readability.FromReader(strings.NewReader(doc), pageURL)
	if err != nil {
		slog.Warn("article extraction failed, converting full document",
			"file", path, "error", err)
		return doc
	}
	if strings.TrimSpace(article.Content) == "" {
		slog.Warn("article extraction produced no content, converting full document",
			"file", path)
		return doc
	}
	return article.Content
}
