package download

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxStemLen caps the sanitized filename stem so filesystem limits are
// never hit even with the extension and a collision suffix appended.
const maxStemLen = 200

// invalidFilenameChars are replaced with underscores, spaces included, so
// artifacts stay shell-friendly on every platform.
var invalidFilenameChars = []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}

// Store persists cleaned fragments as .html files under one directory,
// resolving filename collisions with numeric suffixes.
type Store struct {
	dir   string
	taken map[string]struct{}
}

// NewStore creates the output directory and returns a Store over it.
// Failure here is fatal for the run, not a per-page condition.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("download: create output dir %s: %w", dir, err)
	}
	return &Store{dir: dir, taken: make(map[string]struct{})}, nil
}

// Dir returns the directory artifacts are written to.
func (s *Store) Dir() string { return s.dir }

// SaveHTML writes one fragment and returns the path used.
func (s *Store) SaveHTML(title string, pageID int, fragment string) (string, error) {
	stem := s.reserve(SanitizeTitle(title, pageID))
	path := filepath.Join(s.dir, stem+".html")
	if err := os.WriteFile(path, []byte(fragment), 0o644); err != nil {
		return "", fmt.Errorf("download: write %s: %w", path, err)
	}
	return path, nil
}

// reserve picks the first free filename stem, appending _1, _2, ... on
// collisions within the run or with files already on disk.
func (s *Store) reserve(stem string) string {
	candidate := stem
	for n := 1; s.exists(candidate); n++ {
		candidate = fmt.Sprintf("%s_%d", stem, n)
	}
	s.taken[candidate] = struct{}{}
	return candidate
}

func (s *Store) exists(stem string) bool {
	if _, ok := s.taken[stem]; ok {
		return true
	}
	_, err := os.Stat(filepath.Join(s.dir, stem+".html"))
	return err == nil
}

// SanitizeTitle converts a page title into a safe filename stem: unsafe
// characters and spaces become underscores, surrounding dots and blanks
// are stripped, overlong stems are truncated. Titles that sanitize to
// nothing fall back to page_<id>.
func SanitizeTitle(title string, pageID int) string {
	stem := strings.Trim(title, " .")
	for _, ch := range invalidFilenameChars {
		stem = strings.ReplaceAll(stem, ch, "_")
	}

	if stem == "" {
		if pageID > 0 {
			return fmt.Sprintf("page_%d", pageID)
		}
		return "page"
	}
	if utf8.RuneCountInString(stem) > maxStemLen {
		stem = string([]rune(stem)[:maxStemLen])
	}
	return stem
}
