package search

import (
	"sort"
	"strings"
	"time"

	"github.com/amiaverse/amiablog/internal/corpus"
)

// ExactEngine matches the normalized query as a contiguous substring of any
// normalized searchable field. It is purely literal: no token boundaries, no
// partial-token trickery, just containment.
type ExactEngine struct {
	docs []exactDoc
}

type exactDoc struct {
	slug   string
	date   time.Time
	fields []field // text already normalized
}

// NewExactEngine snapshots the corpus with every field pre-normalized, so a
// query costs one fold plus linear scans.
func NewExactEngine(store *corpus.Store) *ExactEngine {
	posts := store.All()
	docs := make([]exactDoc, 0, len(posts))
	for _, p := range posts {
		fs := searchFields(p)
		for i := range fs {
			fs[i].text = normalize(fs[i].text)
		}
		docs = append(docs, exactDoc{slug: p.Slug, date: p.Date, fields: fs})
	}
	return &ExactEngine{docs: docs}
}

// Query returns matching slugs ranked by best matched field weight, then
// earlier date, then slug. An empty or whitespace-only query matches nothing.
func (e *ExactEngine) Query(text string) []string {
	q := normalize(strings.TrimSpace(text))
	if q == "" {
		return nil
	}

	type hit struct {
		slug   string
		weight int
		date   time.Time
	}
	var hits []hit
	for _, d := range e.docs {
		best := 0
		for _, f := range d.fields {
			if f.weight > best && strings.Contains(f.text, q) {
				best = f.weight
			}
		}
		if best > 0 {
			hits = append(hits, hit{slug: d.slug, weight: best, date: d.date})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].weight != hits[j].weight {
			return hits[i].weight > hits[j].weight
		}
		if !hits[i].date.Equal(hits[j].date) {
			return hits[i].date.Before(hits[j].date)
		}
		return hits[i].slug < hits[j].slug
	})

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.slug
	}
	return out
}

var _ Engine = (*ExactEngine)(nil)
