// Package corpus holds the in-memory set of published posts for the process
// lifetime. The store is built once, before any request is served, and is
// read-only afterwards, so concurrent readers need no locking.
package corpus

import (
	"sort"

	"github.com/amiaverse/amiablog/internal/loader"
	"github.com/amiaverse/amiablog/models"
)

// Tag listing orders accepted by Tags.
const (
	TagOrderName      = "name"
	TagOrderPostCount = "post_count"
)

// Store is the insertion-ordered corpus of published posts, keyed by slug.
type Store struct {
	posts  []models.Post
	bySlug map[string]int
}

// Load reads the content directory and builds the store. A duplicate slug
// among published documents fails the whole load.
func Load(dir string) (*Store, error) {
	posts, err := loader.Load(dir)
	if err != nil {
		return nil, err
	}
	return New(posts)
}

// New builds a store from already-parsed posts, enforcing slug uniqueness.
func New(posts []models.Post) (*Store, error) {
	s := &Store{
		posts:  posts,
		bySlug: make(map[string]int, len(posts)),
	}
	for i, p := range posts {
		if j, ok := s.bySlug[p.Slug]; ok {
			return nil, &models.DuplicateSlugError{
				Slug:  p.Slug,
				Files: []string{posts[j].SourceFile, p.SourceFile},
			}
		}
		s.bySlug[p.Slug] = i
	}
	return s, nil
}

// Len reports the number of published posts.
func (s *Store) Len() int { return len(s.posts) }

// All returns every post in insertion (filename) order.
func (s *Store) All() []models.Post {
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// BySlug looks up a single post. Returns models.ErrPostNotFound when the slug
// is unknown.
func (s *Store) BySlug(slug string) (models.Post, error) {
	i, ok := s.bySlug[slug]
	if !ok {
		return models.Post{}, models.ErrPostNotFound
	}
	return s.posts[i], nil
}

// ByTag returns the posts carrying the given tag, in insertion order.
func (s *Store) ByTag(tag string) []models.Post {
	var out []models.Post
	for _, p := range s.posts {
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// SortedByDate returns the posts ordered by publish date. Equal dates are
// always broken by ascending slug so the output is deterministic, which the
// static exporter depends on.
func (s *Store) SortedByDate(descending bool) []models.Post {
	return sortPosts(s.All(), descending, func(p models.Post) int64 { return p.Date.Unix() })
}

// SortedByModified orders by last-modified date with the same tiebreak rules.
func (s *Store) SortedByModified(descending bool) []models.Post {
	return sortPosts(s.All(), descending, func(p models.Post) int64 { return p.LastModified.Unix() })
}

// SortByModified orders an arbitrary post slice by last-modified date with
// the store's tiebreak rules, for callers holding a filtered subset.
func SortByModified(posts []models.Post, descending bool) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	return sortPosts(out, descending, func(p models.Post) int64 { return p.LastModified.Unix() })
}

func sortPosts(posts []models.Post, descending bool, key func(models.Post) int64) []models.Post {
	sort.SliceStable(posts, func(i, j int) bool {
		ki, kj := key(posts[i]), key(posts[j])
		if ki != kj {
			if descending {
				return ki > kj
			}
			return ki < kj
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts
}

// RecentPosts returns the n most recently published posts, newest first.
func (s *Store) RecentPosts(n int) []models.Post {
	out := s.SortedByDate(true)
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Tags lists every distinct tag with its post count. orderBy is TagOrderName
// (ascending) or TagOrderPostCount (descending, name ascending on ties).
func (s *Store) Tags(orderBy string) []models.Tag {
	counts := make(map[string]int)
	for _, p := range s.posts {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	tags := make([]models.Tag, 0, len(counts))
	for name, n := range counts {
		tags = append(tags, models.Tag{Name: name, PostCount: n})
	}
	sort.Slice(tags, func(i, j int) bool {
		if orderBy == TagOrderPostCount && tags[i].PostCount != tags[j].PostCount {
			return tags[i].PostCount > tags[j].PostCount
		}
		return tags[i].Name < tags[j].Name
	})
	return tags
}
