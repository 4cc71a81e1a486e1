// Package cleaner prepares rendered MediaWiki fragments for persistence:
// comment nodes are dropped, the parser-output wrapper is unwrapped and a
// title heading is injected. Output stays a bare embeddable fragment.
package cleaner

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// wrapperClass marks the MediaWiki container around rendered articles.
const wrapperClass = "mw-parser-output"

// CleanFragment rewrites a rendered fragment for storage:
//
//  1. every HTML comment node is removed;
//  2. the parser-output wrapper div is unwrapped, attributes and all,
//     keeping its content in place;
//  3. an <h1> with the human-readable title (underscores read as spaces,
//     HTML-escaped) is prepended unless the fragment already starts with
//     a heading.
//
// An empty title injects no heading, so the fragment passes through with
// only the comment and wrapper treatment applied.
func CleanFragment(fragment, title string) (string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("cleaner: parse fragment: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		return "", fmt.Errorf("cleaner: fragment has no body after parsing")
	}

	removeComments(body)
	unwrapAll(body, wrapperClass)

	content, err := renderChildren(body)
	if err != nil {
		return "", fmt.Errorf("cleaner: render fragment: %w", err)
	}

	heading := headingFor(title)
	if heading == "" || startsWithHeading(body) {
		return content, nil
	}
	return heading + content, nil
}

// headingFor renders the injected title heading. Empty titles produce no
// heading.
func headingFor(title string) string {
	t := strings.TrimSpace(strings.ReplaceAll(title, "_", " "))
	if t == "" {
		return ""
	}
	return "<h1>" + html.EscapeString(t) + "</h1>"
}

// findBody returns the <body> element html.Parse synthesises around a
// fragment.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// removeComments drops every comment node beneath n.
func removeComments(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
			continue
		}
		removeComments(c)
	}
}

// unwrapAll splices the children of every element carrying class into its
// parent and drops the element itself. Nested wrappers unwrap innermost
// first.
func unwrapAll(n *html.Node, class string) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		unwrapAll(c, class)
		if c.Type == html.ElementNode && hasClass(c, class) {
			for gc := c.FirstChild; gc != nil; {
				after := gc.NextSibling
				c.RemoveChild(gc)
				n.InsertBefore(gc, c)
				gc = after
			}
			n.RemoveChild(c)
		}
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, f := range strings.Fields(attr.Val) {
			if f == class {
				return true
			}
		}
	}
	return false
}

// renderChildren serialises the immediate children of n in order.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// startsWithHeading reports whether the first element of the fragment is
// already an <h1>, ignoring leading whitespace text.
func startsWithHeading(body *html.Node) bool {
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return c.DataAtom == atom.H1
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		}
	}
	return false
}
