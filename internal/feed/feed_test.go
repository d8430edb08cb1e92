package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/corpus"
	"github.com/amiaverse/amiablog/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildRSS(t *testing.T) {
	store, err := corpus.New([]models.Post{
		{Slug: "old", Title: "Old Post", Description: "d1", Author: "amia",
			Date: day("2023-01-01"), LastModified: day("2023-01-01")},
		{Slug: "new", Title: "New Post", Description: "d2", Author: "amia",
			Date: day("2024-01-01"), LastModified: day("2024-01-01")},
	})
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	site := config.SiteConfig{Title: "Blog", Description: "about", BaseURL: "http://example.com/"}

	rss, err := BuildRSS(site, store, false)
	if err != nil {
		t.Fatalf("BuildRSS: %v", err)
	}
	if got := strings.Count(rss, "<item>"); got != 2 {
		t.Errorf("items = %d, want 2", got)
	}
	// Newest first.
	if strings.Index(rss, "New Post") > strings.Index(rss, "Old Post") {
		t.Error("feed not ordered newest first")
	}
	if !strings.Contains(rss, "http://example.com/post/new") {
		t.Error("item link missing base url")
	}
}

func TestBuildRSSStaticGenerator(t *testing.T) {
	store, err := corpus.New(nil)
	if err != nil {
		t.Fatalf("corpus.New: %v", err)
	}
	rss, err := BuildRSS(config.SiteConfig{Title: "Blog"}, store, true)
	if err != nil {
		t.Fatalf("BuildRSS: %v", err)
	}
	if !strings.Contains(rss, "AmiaBlog-static") {
		t.Error("static feed missing static generator marker")
	}
}
