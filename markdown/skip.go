package markdown

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var topLevelSel = mustSel("body > *")

func mustSel(s string) cascadia.Sel {
	sel, err := cascadia.Parse(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// HeadingOnly reports whether the fragment consists of a single <h1> and
// nothing else: a title page with no content worth converting.
func HeadingOnly(fragment string) bool {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return false
	}

	kids := cascadia.QueryAll(doc, topLevelSel)
	if len(kids) != 1 || kids[0].DataAtom != atom.H1 {
		return false
	}

	// Stray text outside the heading still counts as content.
	for c := kids[0].Parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return false
		}
	}
	return true
}
