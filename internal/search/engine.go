// Package search builds a queryable index over the corpus. Two engines are
// available behind one interface: a literal exact-substring scan and a
// tokenized engine backed by an inverted index. The engine is chosen once,
// when the index is built, never per query.
package search

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/corpus"
	"github.com/amiaverse/amiablog/internal/metrics"
	"github.com/amiaverse/amiablog/models"
)

// Engine ranks slugs for a query. Engines operate on slugs only; they never
// own post data.
type Engine interface {
	Query(text string) []string
}

// Router owns the configured engine, bounds query input, and rehydrates the
// ranked slugs into full posts from the corpus.
type Router struct {
	store    *corpus.Store
	engine   Engine
	maxQuery int
	cache    *lru.Cache[string, []string]
	metrics  *metrics.Metrics
}

// NewRouter builds the index for the configured method. An unknown method or
// segmenter is a startup error; queries can no longer fail that way.
func NewRouter(store *corpus.Store, cfg config.SearchConfig, m *metrics.Metrics) (*Router, error) {
	seg, err := newSegmenter(cfg.Segmenter)
	if err != nil {
		return nil, err
	}

	var engine Engine
	switch cfg.Method {
	case config.SearchMethodExact:
		engine = NewExactEngine(store)
	case config.SearchMethodTokenized:
		engine = NewTokenizedEngine(store, seg)
	default:
		return nil, fmt.Errorf("unknown search method %q", cfg.Method)
	}

	r := &Router{
		store:    store,
		engine:   engine,
		maxQuery: cfg.MaxQueryLength,
		metrics:  m,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, []string](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("building query cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

func newSegmenter(name string) (Segmenter, error) {
	switch name {
	case config.SegmenterUnicode:
		return UnicodeSegmenter{}, nil
	case config.SegmenterCJK:
		return CJKSegmenter{}, nil
	default:
		return nil, fmt.Errorf("unknown segmenter %q", name)
	}
}

// Search evaluates a query and returns the matching posts in rank order. A
// query longer than the configured bound is rejected with ErrQueryTooLong;
// the bound keeps tokenization cost predictable. Cancellation via ctx is
// side-effect free since engines hold no per-query state.
func (r *Router) Search(ctx context.Context, text string) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(text) > r.maxQuery {
		r.count("rejected")
		return nil, fmt.Errorf("%w: %d runes (max %d)", models.ErrQueryTooLong,
			utf8.RuneCountInString(text), r.maxQuery)
	}

	start := time.Now()
	slugs, cached := r.lookup(text)
	if !cached {
		slugs = r.engine.Query(text)
		r.storeResult(text, slugs)
	}
	if r.metrics != nil {
		r.metrics.SearchLatency.Observe(time.Since(start).Seconds())
	}

	if len(slugs) == 0 {
		r.count("empty")
		return nil, nil
	}
	r.count("ok")

	posts := make([]models.Post, 0, len(slugs))
	for _, slug := range slugs {
		post, err := r.store.BySlug(slug)
		if err != nil {
			// An engine can only emit slugs it was built from; a miss here
			// means the index and corpus drifted, which the immutable build
			// is supposed to make impossible.
			return nil, fmt.Errorf("index returned unknown slug %q: %w", slug, err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *Router) lookup(text string) ([]string, bool) {
	if r.cache == nil {
		return nil, false
	}
	slugs, ok := r.cache.Get(text)
	if r.metrics != nil {
		if ok {
			r.metrics.SearchCacheHits.Inc()
		} else {
			r.metrics.SearchCacheMisses.Inc()
		}
	}
	return slugs, ok
}

func (r *Router) storeResult(text string, slugs []string) {
	if r.cache != nil {
		r.cache.Add(text, slugs)
	}
}

func (r *Router) count(outcome string) {
	if r.metrics != nil {
		r.metrics.SearchQueriesTotal.WithLabelValues(outcome).Inc()
	}
}
