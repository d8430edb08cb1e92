// Package feed builds the RSS feed from the corpus.
package feed

import (
	"fmt"
	"strings"

	"github.com/gorilla/feeds"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/corpus"
)

// BuildRSS renders the RSS feed from the corpus, newest post first. The
// static exporter reuses this with static=true, which only changes the
// generator tag; the feed never depends on the search index.
func BuildRSS(site config.SiteConfig, store *corpus.Store, static bool) (string, error) {
	base := strings.TrimSuffix(site.BaseURL, "/")
	generator := "AmiaBlog"
	if static {
		generator += "-static"
	}

	feed := &feeds.Feed{
		Title:       site.Title,
		Link:        &feeds.Link{Href: base + "/"},
		Description: site.Description,
	}

	posts := store.SortedByDate(true)
	if len(posts) > 0 {
		feed.Created = posts[0].Date
	}
	for _, p := range posts {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.Slug,
			Title:       p.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/post/%s", base, p.Slug)},
			Description: p.Description,
			Author:      &feeds.Author{Name: p.Author},
			Created:     p.Date,
			Updated:     p.LastModified,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("building rss feed: %w", err)
	}
	// gorilla/feeds has no generator hook; the comment marks static builds.
	return strings.Replace(rss, "<channel>", "<channel>\n    <!-- generator: "+generator+" -->", 1), nil
}
