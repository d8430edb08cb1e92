package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "amiablog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "site:\n  title: Test Blog\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.Title != "Test Blog" {
		t.Errorf("title = %q, want %q", cfg.Site.Title, "Test Blog")
	}
	if cfg.Search.Method != SearchMethodTokenized {
		t.Errorf("default method = %q, want %q", cfg.Search.Method, SearchMethodTokenized)
	}
	if cfg.Search.MaxQueryLength != 256 {
		t.Errorf("default max_query_length = %d, want 256", cfg.Search.MaxQueryLength)
	}
}

func TestLoadRejectsUnknownMethod(t *testing.T) {
	_, err := Load(writeConfig(t, "search:\n  method: fuzzy\n"))
	if err == nil {
		t.Fatal("expected error for unknown search method")
	}
}

func TestLoadRejectsUnknownSegmenter(t *testing.T) {
	_, err := Load(writeConfig(t, "search:\n  segmenter: nope\n"))
	if err == nil {
		t.Fatal("expected error for unknown segmenter")
	}
}

func TestLoadRejectsZeroQueryBound(t *testing.T) {
	_, err := Load(writeConfig(t, "search:\n  max_query_length: 0\n"))
	if err == nil {
		t.Fatal("expected error for zero max_query_length")
	}
}
