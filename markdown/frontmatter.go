package markdown

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/use-agent/wikigrab/models"
)

// FrontMatter is the YAML block prepended to converted files when
// enabled. Fields are deterministic so re-converting an unchanged
// fragment rewrites an identical file.
type FrontMatter struct {
	Title  string `yaml:"title"`
	Source string `yaml:"source"`
}

// frontMatterFor renders the front matter block for one unit. The title
// prefers the fragment's leading <h1> over the filename-derived one.
func frontMatterFor(unit models.ConversionUnit, fragment string) (string, error) {
	title := leadingHeading(fragment)
	if title == "" {
		title = unit.Title
	}

	out, err := yaml.Marshal(FrontMatter{
		Title:  title,
		Source: filepath.Base(unit.SourcePath),
	})
	if err != nil {
		return "", fmt.Errorf("markdown: encode front matter: %w", err)
	}
	return "---\n" + string(out) + "---\n\n", nil
}

// leadingHeading returns the text of the fragment's first <h1>, if any.
func leadingHeading(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "h1" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}
