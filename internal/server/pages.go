package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/corpus"
	"github.com/amiaverse/amiablog/internal/feed"
	"github.com/amiaverse/amiablog/internal/highlight"
	"github.com/amiaverse/amiablog/internal/search"
	"github.com/amiaverse/amiablog/models"
)

// PagesHandler serves every HTML page of the blog plus the feed.
type PagesHandler struct {
	Cfg       *config.Config
	Store     *corpus.Store
	Search    *search.Router
	Highlight *highlight.Manager
}

func (h *PagesHandler) Register(e *echo.Echo) {
	e.GET("/", h.home)
	e.GET("/posts", h.posts)
	e.GET("/post/:slug", h.post)
	e.GET("/tags", h.tags)
	e.GET("/tag/:name", h.tag)
	e.GET("/search", h.search)
	e.GET("/feed.xml", h.feed)
}

func (h *PagesHandler) home(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", map[string]any{
		"recent_posts": h.Store.RecentPosts(h.Cfg.Site.RecentPosts),
	})
}

func (h *PagesHandler) posts(c echo.Context) error {
	return c.Render(http.StatusOK, "posts.html", map[string]any{
		"posts": h.Store.SortedByModified(true),
	})
}

func (h *PagesHandler) post(c echo.Context) error {
	post, err := h.Store.BySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, models.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such post")
		}
		return err
	}
	return c.Render(http.StatusOK, "post.html", map[string]any{
		"post":           post,
		"hljs_languages": h.Highlight.ForPost(post.Body),
	})
}

func (h *PagesHandler) tags(c echo.Context) error {
	tags := h.Store.Tags(corpus.TagOrderPostCount)
	return c.Render(http.StatusOK, "tags.html", map[string]any{
		"tags":   tags,
		"n_tags": len(tags),
	})
}

func (h *PagesHandler) tag(c echo.Context) error {
	name := c.Param("name")
	posts := h.Store.ByTag(name)
	if len(posts) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no such tag")
	}
	return c.Render(http.StatusOK, "tag.html", map[string]any{
		"tag":   name,
		"posts": corpus.SortByModified(posts, true),
	})
}

// search evaluates the query against the engine fixed at startup. An
// over-long query is a client error, never a crash; it is isolated to this
// request and touches no shared state.
func (h *PagesHandler) search(c echo.Context) error {
	query := c.QueryParam("q")
	results, err := h.Search.Search(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrQueryTooLong) {
			return echo.NewHTTPError(http.StatusBadRequest, "query too long")
		}
		return err
	}
	return c.Render(http.StatusOK, "search.html", map[string]any{
		"query":   query,
		"results": results,
	})
}

func (h *PagesHandler) feed(c echo.Context) error {
	rss, err := feed.BuildRSS(h.Cfg.Site, h.Store, false)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
