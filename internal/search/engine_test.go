package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/metrics"
	"github.com/amiaverse/amiablog/models"
)

func searchCfg(method string) config.SearchConfig {
	return config.SearchConfig{
		Method:         method,
		Segmenter:      config.SegmenterCJK,
		MaxQueryLength: 32,
		CacheSize:      8,
	}
}

func TestNewRouterUnknownMethod(t *testing.T) {
	store := mustStore(t, models.Post{Slug: "a", Title: "t", Date: day("2024-01-01")})
	if _, err := NewRouter(store, searchCfg("fuzzy"), nil); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestNewRouterUnknownSegmenter(t *testing.T) {
	store := mustStore(t, models.Post{Slug: "a", Title: "t", Date: day("2024-01-01")})
	cfg := searchCfg(config.SearchMethodTokenized)
	cfg.Segmenter = "nope"
	if _, err := NewRouter(store, cfg, nil); err == nil {
		t.Fatal("expected error for unknown segmenter")
	}
}

func TestRouterRehydratesPosts(t *testing.T) {
	store := mustStore(t,
		models.Post{Slug: "a", Title: "go tooling", Description: "d", Date: day("2024-01-01")},
	)
	r, err := NewRouter(store, searchCfg(config.SearchMethodTokenized), nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	posts, err := r.Search(context.Background(), "tooling")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "go tooling" {
		t.Fatalf("posts = %+v, want full post data", posts)
	}
}

func TestRouterRejectsLongQuery(t *testing.T) {
	store := mustStore(t, models.Post{Slug: "a", Title: "t", Date: day("2024-01-01")})
	r, err := NewRouter(store, searchCfg(config.SearchMethodExact), nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	_, err = r.Search(context.Background(), strings.Repeat("x", 33))
	if !errors.Is(err, models.ErrQueryTooLong) {
		t.Fatalf("err = %v, want ErrQueryTooLong", err)
	}

	// The bound is in runes, not bytes.
	if _, err := r.Search(context.Background(), strings.Repeat("搜", 32)); err != nil {
		t.Errorf("32-rune CJK query rejected: %v", err)
	}
}

func TestRouterCancelledContext(t *testing.T) {
	store := mustStore(t, models.Post{Slug: "a", Title: "t", Date: day("2024-01-01")})
	r, err := NewRouter(store, searchCfg(config.SearchMethodExact), nil)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Search(ctx, "t"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRouterCachedResultsStable(t *testing.T) {
	store := mustStore(t,
		models.Post{Slug: "a", Title: "alpha", Date: day("2024-01-01")},
		models.Post{Slug: "b", Title: "alpha beta", Date: day("2024-02-01")},
	)
	m := metrics.New(prometheus.NewRegistry())
	r, err := NewRouter(store, searchCfg(config.SearchMethodTokenized), m)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	first, err := r.Search(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := r.Search(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Search (cached): %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("cached result differs: %d vs %d posts", len(first), len(second))
	}
	for i := range first {
		if first[i].Slug != second[i].Slug {
			t.Errorf("cached rank %d: %q vs %q", i, first[i].Slug, second[i].Slug)
		}
	}
}
