package download

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		pageID int
		want   string
	}{
		{"spaces become underscores", "Main Page", 1, "Main_Page"},
		{"all unsafe characters", `A/B\C:D*E?F"G<H>I|J`, 1, "A_B_C_D_E_F_G_H_I_J"},
		{"surrounding whitespace trimmed", "  Spaced Out  ", 1, "Spaced_Out"},
		{"trailing dots trimmed", "Et cetera...", 1, "Et_cetera"},
		{"unicode preserved", "Gödel, Escher, Bach", 1, "Gödel,_Escher,_Bach"},
		{"namespace colon", "Help:Contents", 1, "Help_Contents"},
		{"only dots falls back to id", "...", 42, "page_42"},
		{"empty falls back to id", "", 42, "page_42"},
		{"empty without id", "", 0, "page"},
		{"underscores kept", "Already_Underscored", 1, "Already_Underscored"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title, tt.pageID); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitle_TruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("ä", 300)
	got := SanitizeTitle(long, 1)

	if n := utf8.RuneCountInString(got); n != 200 {
		t.Errorf("stem has %d runes, want 200", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation broke a multi-byte rune")
	}
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "wiki_pages")

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", store.Dir(), dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestNewStore_FailsOnFileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewStore(path); err == nil {
		t.Error("NewStore should fail when a file occupies the path")
	}
}

func TestStore_SaveHTML(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := store.SaveHTML("Main Page", 1, "<h1>Main Page</h1><p>hi</p>")
	if err != nil {
		t.Fatalf("SaveHTML: %v", err)
	}
	if filepath.Base(path) != "Main_Page.html" {
		t.Errorf("path = %q, want Main_Page.html", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "<h1>Main Page</h1><p>hi</p>" {
		t.Errorf("content = %q", got)
	}
}

func TestStore_CollidingTitlesGetSuffixes(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Distinct titles that sanitize to the same stem.
	var paths []string
	for _, title := range []string{"A B", "A:B", "A*B"} {
		p, err := store.SaveHTML(title, 1, "<p>x</p>")
		if err != nil {
			t.Fatalf("SaveHTML(%q): %v", title, err)
		}
		paths = append(paths, filepath.Base(p))
	}

	want := []string{"A_B.html", "A_B_1.html", "A_B_2.html"}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestStore_CollisionWithFileAlreadyOnDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Page.html"), []byte("old"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := store.SaveHTML("Page", 1, "new")
	if err != nil {
		t.Fatalf("SaveHTML: %v", err)
	}
	if filepath.Base(path) != "Page_1.html" {
		t.Errorf("path = %q, want Page_1.html", path)
	}

	// The pre-existing artifact stays untouched.
	old, err := os.ReadFile(filepath.Join(dir, "Page.html"))
	if err != nil {
		t.Fatalf("read seed: %v", err)
	}
	if string(old) != "old" {
		t.Errorf("pre-existing file overwritten: %q", old)
	}
}
