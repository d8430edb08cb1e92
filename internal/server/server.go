// Package server wires the corpus, search router, and renderer into an echo
// application. Everything the handlers read is built before Start and
// immutable afterwards, so request handling is lock-free.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amiaverse/amiablog/config"
	"github.com/amiaverse/amiablog/internal/corpus"
	"github.com/amiaverse/amiablog/internal/highlight"
	"github.com/amiaverse/amiablog/internal/metrics"
	"github.com/amiaverse/amiablog/internal/render"
	"github.com/amiaverse/amiablog/internal/search"
	"github.com/amiaverse/amiablog/internal/version"
)

// Run loads the corpus, builds the configured search index, and serves until
// the listener fails. Any load or configuration error aborts startup.
func Run(cfg *config.Config) error {
	logger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)

	store, err := corpus.Load(cfg.Content.PostsDir)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	logger.Printf("loaded %d published posts from %s", store.Len(), cfg.Content.PostsDir)

	m := metrics.New(prometheus.DefaultRegisterer)
	router, err := search.NewRouter(store, cfg.Search, m)
	if err != nil {
		return fmt.Errorf("building search index: %w", err)
	}
	logger.Printf("search index ready (method=%s segmenter=%s)", cfg.Search.Method, cfg.Search.Segmenter)

	e := New(cfg, store, router, m)
	logger.Printf("listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// New assembles the echo application without starting it. Split out from Run
// so tests can drive handlers through httptest.
func New(cfg *config.Config, store *corpus.Store, router *search.Router, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestMetrics(m))

	renderer := render.New(cfg.Content.TemplatesDir, cfg.Server.DisableTemplateCache, map[string]any{
		"config":          cfg,
		"site":            cfg.Site,
		"backend_version": version.Version,
		"total_posts":     store.Len(),
		"copyright":       cfg.Site.Copyright,
		"is_static":       false,
	})
	e.Renderer = renderer

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if c.Response().Committed {
			return
		}
		if rerr := c.Render(code, "error.html", map[string]any{"error": msg, "code": code}); rerr != nil {
			_ = c.String(code, msg)
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if cfg.Content.StaticDir != "" {
		e.Static("/static", cfg.Content.StaticDir)
	}

	pages := &PagesHandler{
		Cfg:       cfg,
		Store:     store,
		Search:    router,
		Highlight: highlight.New(cfg.Site.HLJSLanguages),
	}
	pages.Register(e)

	return e
}

// requestMetrics records request counts and latency per route template.
func requestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if m == nil {
				return err
			}
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
