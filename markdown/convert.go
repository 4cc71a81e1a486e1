// Package markdown turns saved HTML fragments into Markdown files, one
// .md per .html, standalone from the download pipeline.
package markdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/use-agent/wikigrab/models"
)

// Options carry the optional conversion behaviours.
type Options struct {
	// FrontMatter prepends a YAML front matter block to each written
	// file.
	FrontMatter bool

	// ExtractArticle runs readability extraction when an input turns out
	// to be a full HTML document rather than a saved fragment.
	ExtractArticle bool
}

// Converter converts HTML fragments to Markdown. The underlying
// converter is created once and reused across files (goroutine-safe).
type Converter struct {
	conv *converter.Converter
	opts Options
}

// New builds a Converter producing ATX headings, pipe tables with a
// dashed header rule, and minimal table cell padding.
func New(opts Options) *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		),
		opts: opts,
	}
}

var reBlankRuns = regexp.MustCompile(`\n{3,}`)

// ConvertString converts one HTML fragment to Markdown. It is a pure
// function of its input: the same fragment always yields byte-identical
// output.
func (c *Converter) ConvertString(fragment string) (string, error) {
	md, err := c.conv.ConvertString(fragment)
	if err != nil {
		return "", models.NewWikiError(models.ErrCodeConversion, "markdown conversion failed", err)
	}
	return tidy(md), nil
}

// tidy normalises converter output: trailing whitespace stripped per
// line, runs of blank lines collapsed to one, outer whitespace trimmed.
func tidy(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	out := strings.Join(lines, "\n")
	out = reBlankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
