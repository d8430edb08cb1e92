// Package staticify renders every servable page to a destination tree. The
// crawl reads the corpus directly and never touches the search index; pages
// are rendered in static mode so search and sort affordances come out
// disabled but the site stays coherent.
package staticify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/corpus"
	"github.com/amiaverse/amiablog/internal/feed"
	"github.com/amiaverse/amiablog/internal/highlight"
	"github.com/amiaverse/amiablog/internal/render"
	"github.com/amiaverse/amiablog/internal/version"
)

// Generator drives one static export run.
type Generator struct {
	Destination    string
	RemoveExisting bool

	cfg      *config.Config
	store    *corpus.Store
	renderer *render.Renderer
	hl       *highlight.Manager
	logger   *log.Logger
}

func New(cfg *config.Config, destination string, removeExisting bool) *Generator {
	return &Generator{
		Destination:    destination,
		RemoveExisting: removeExisting,
		cfg:            cfg,
		logger:         log.New(log.Writer(), "[EXPORT] ", log.LstdFlags),
	}
}

// Run performs the full export: load data, prepare the destination, copy
// assets, render every page, write build info. Any invalid document aborts
// before the destination is touched.
func (g *Generator) Run() error {
	start := time.Now()
	buildTime := start.Format("2006-01-02 15:04:05")
	g.logger.Printf("generating static site with AmiaBlog v%s to %s", version.Version, g.Destination)

	if err := g.loadData(buildTime); err != nil {
		return err
	}
	if err := g.initDestination(); err != nil {
		return err
	}
	if err := g.copyStaticAssets(); err != nil {
		return err
	}
	if err := g.renderTopLayers(); err != nil {
		return err
	}
	if err := g.renderPosts(); err != nil {
		return err
	}
	if err := g.renderTags(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	g.logger.Printf("generation completed in %.2f ms", float64(elapsed.Microseconds())/1000)
	return g.writeBuildInfo(buildTime, elapsed)
}

// loadData builds the corpus and a cache-free renderer in static mode. The
// search index is deliberately never constructed here.
func (g *Generator) loadData(buildTime string) error {
	store, err := corpus.Load(g.cfg.Content.PostsDir)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	g.store = store
	g.hl = highlight.New(g.cfg.Site.HLJSLanguages)
	g.renderer = render.New(g.cfg.Content.TemplatesDir, true, map[string]any{
		"config":            g.cfg,
		"site":              g.cfg.Site,
		"backend_version":   version.Version + "-static",
		"total_posts":       store.Len(),
		"copyright":         g.cfg.Site.Copyright,
		"is_static":         true,
		"static_build_time": buildTime,
	})
	g.logger.Printf("loaded %d published posts", store.Len())
	return nil
}

func (g *Generator) initDestination() error {
	if _, err := os.Stat(g.Destination); err == nil {
		if g.RemoveExisting {
			g.logger.Printf("removing existing destination %s", g.Destination)
			if err := os.RemoveAll(g.Destination); err != nil {
				return fmt.Errorf("removing destination: %w", err)
			}
		}
		// Without the flag, new files are written into (and may overwrite)
		// the existing tree.
	}
	return os.MkdirAll(g.Destination, 0o755)
}

func (g *Generator) copyStaticAssets() error {
	src := g.cfg.Content.StaticDir
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); err != nil {
		g.logger.Printf("no static assets at %s, skipping", src)
		return nil
	}
	dst := filepath.Join(g.Destination, "static")
	if err := os.CopyFS(dst, os.DirFS(src)); err != nil {
		return fmt.Errorf("copying static assets: %w", err)
	}
	// Browsers expect the favicon at the site root.
	favicon := filepath.Join(dst, "favicon.ico")
	if _, err := os.Stat(favicon); err == nil {
		if err := os.Rename(favicon, filepath.Join(g.Destination, "favicon.ico")); err != nil {
			return fmt.Errorf("moving favicon: %w", err)
		}
	}
	return nil
}

func (g *Generator) renderTopLayers() error {
	g.logger.Printf("rendering: feed.xml")
	rss, err := feed.BuildRSS(g.cfg.Site, g.store, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(g.Destination, "feed.xml"), []byte(rss), 0o644); err != nil {
		return fmt.Errorf("writing feed.xml: %w", err)
	}

	pages := []struct {
		file     string
		template string
		data     map[string]any
	}{
		{"index.html", "index.html", map[string]any{
			"recent_posts": g.store.RecentPosts(g.cfg.Site.RecentPosts),
		}},
		{"posts.html", "posts.html", map[string]any{
			"posts": g.store.SortedByModified(true),
		}},
		{"tags.html", "tags.html", func() map[string]any {
			tags := g.store.Tags(corpus.TagOrderPostCount)
			return map[string]any{"tags": tags, "n_tags": len(tags)}
		}()},
		{"404.html", "error.html", map[string]any{
			"code": 404, "error": "page not found",
		}},
	}
	for _, p := range pages {
		g.logger.Printf("rendering: %s", p.file)
		if err := g.renderToFile(p.file, p.template, p.data); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderPosts() error {
	if g.store.Len() == 0 {
		g.logger.Printf("no posts found, skipping")
		return nil
	}
	if err := os.MkdirAll(filepath.Join(g.Destination, "post"), 0o755); err != nil {
		return err
	}
	for _, post := range g.store.All() {
		name := filepath.Join("post", post.Slug+".html")
		g.logger.Printf("rendering: %s", name)
		err := g.renderToFile(name, "post.html", map[string]any{
			"post":           post,
			"hljs_languages": g.hl.ForPost(post.Body),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderTags() error {
	tags := g.store.Tags(corpus.TagOrderName)
	if len(tags) == 0 {
		g.logger.Printf("no tags found, skipping")
		return nil
	}
	if err := os.MkdirAll(filepath.Join(g.Destination, "tag"), 0o755); err != nil {
		return err
	}
	for _, tag := range tags {
		name := filepath.Join("tag", tag.Name+".html")
		g.logger.Printf("rendering: %s", name)
		err := g.renderToFile(name, "tag.html", map[string]any{
			"tag":   tag.Name,
			"posts": corpus.SortByModified(g.store.ByTag(tag.Name), true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderToFile(name, tmpl string, data map[string]any) error {
	f, err := os.Create(filepath.Join(g.Destination, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if err := g.renderer.Execute(f, tmpl, data); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return f.Close()
}

func (g *Generator) writeBuildInfo(buildTime string, elapsed time.Duration) error {
	info := fmt.Sprintf(
		"software: AmiaBlog\nversion: %s\ngo_version: %s\nplatform: %s/%s\nbuild_id: %s\nbuild_time: %s\nbuild_time_usage: %.2fms\n",
		version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH,
		uuid.NewString(), buildTime, float64(elapsed.Microseconds())/1000,
	)
	return os.WriteFile(filepath.Join(g.Destination, "amiablog_build_info.txt"), []byte(info), 0o644)
}
