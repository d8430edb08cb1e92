package search

import (
	"sort"
	"strings"
	"time"

	"github.com/amiaverse/amiablog/internal/corpus"
)

// posting records, for one (token, slug) pair, how often the token occurs
// across the post's searchable fields and the best field weight it was seen
// in. The weight only matters for breaking score ties.
type posting struct {
	count  int
	weight int
}

// TokenizedEngine segments every searchable field into tokens and builds an
// inverted index token -> {slug: posting}. Scoring is a plain additive term
// frequency: the sum, over the query's tokens, of that token's occurrence
// count in the candidate post. There is deliberately no IDF weighting and no
// document-length normalization; the ranking, crude as it is, is part of the
// engine's observable contract.
type TokenizedEngine struct {
	seg   Segmenter
	index map[string]map[string]*posting
	dates map[string]time.Time
}

// NewTokenizedEngine builds the inverted index from the corpus snapshot. The
// index is rebuilt wholesale when the corpus changes; it is never patched.
func NewTokenizedEngine(store *corpus.Store, seg Segmenter) *TokenizedEngine {
	e := &TokenizedEngine{
		seg:   seg,
		index: make(map[string]map[string]*posting),
		dates: make(map[string]time.Time),
	}
	for _, p := range store.All() {
		e.dates[p.Slug] = p.Date
		for _, f := range searchFields(p) {
			for _, tok := range seg.Segment(normalize(f.text)) {
				slugs, ok := e.index[tok]
				if !ok {
					slugs = make(map[string]*posting)
					e.index[tok] = slugs
				}
				pst, ok := slugs[p.Slug]
				if !ok {
					pst = &posting{}
					slugs[p.Slug] = pst
				}
				pst.count++
				if f.weight > pst.weight {
					pst.weight = f.weight
				}
			}
		}
	}
	return e
}

// Query segments the query with the same segmenter the index was built with,
// sums occurrence counts per candidate post, and ranks by descending score.
// Score ties fall back to best field weight, then earlier date, then slug.
// Posts with zero total score never appear.
func (e *TokenizedEngine) Query(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	tokens := e.seg.Segment(normalize(text))
	if len(tokens) == 0 {
		return nil
	}

	type hit struct {
		slug   string
		score  int
		weight int
	}
	acc := make(map[string]*hit)
	for _, tok := range tokens {
		for slug, pst := range e.index[tok] {
			h, ok := acc[slug]
			if !ok {
				h = &hit{slug: slug}
				acc[slug] = h
			}
			h.score += pst.count
			if pst.weight > h.weight {
				h.weight = pst.weight
			}
		}
	}

	hits := make([]*hit, 0, len(acc))
	for _, h := range acc {
		hits = append(hits, h)
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		if hits[i].weight != hits[j].weight {
			return hits[i].weight > hits[j].weight
		}
		di, dj := e.dates[hits[i].slug], e.dates[hits[j].slug]
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return hits[i].slug < hits[j].slug
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.slug
	}
	return out
}

var _ Engine = (*TokenizedEngine)(nil)
