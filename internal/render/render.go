// Package render wraps html/template with a per-page cache and a set of
// static parameters merged into every render. The exporter reuses it with
// static mode switched on, which is how templates know to disable the live
// search and sort affordances.
package render

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/russross/blackfriday/v2"
)

// Renderer loads templates from a directory and caches the parsed sets.
// DisableCache re-parses on every render, useful while editing templates.
type Renderer struct {
	dir          string
	disableCache bool

	// Static params are merged into every render under their own keys and
	// never override page data.
	static map[string]any

	mu    sync.Mutex
	cache map[string]*template.Template
}

func New(dir string, disableCache bool, static map[string]any) *Renderer {
	if static == nil {
		static = map[string]any{}
	}
	return &Renderer{
		dir:          dir,
		disableCache: disableCache,
		static:       static,
		cache:        make(map[string]*template.Template),
	}
}

// SetParam adds or replaces one static parameter.
func (r *Renderer) SetParam(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.static[key] = value
}

var funcs = template.FuncMap{
	"markdown": func(s string) template.HTML {
		return template.HTML(blackfriday.Run([]byte(s)))
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"join": strings.Join,
}

func (r *Renderer) load(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.disableCache {
		if t, ok := r.cache[name]; ok {
			return t, nil
		}
	}
	t, err := template.New(name).Funcs(funcs).ParseFiles(
		filepath.Join(r.dir, "layout.html"),
		filepath.Join(r.dir, name),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	if !r.disableCache {
		r.cache[name] = t
	}
	return t, nil
}

// Render implements echo.Renderer. data must be nil or a map[string]any.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	page, ok := data.(map[string]any)
	if data != nil && !ok {
		return fmt.Errorf("render %s: data must be map[string]any, got %T", name, data)
	}
	return r.Execute(w, name, page)
}

// Execute renders one page template inside the layout.
func (r *Renderer) Execute(w io.Writer, name string, page map[string]any) error {
	t, err := r.load(name)
	if err != nil {
		return err
	}

	data := make(map[string]any, len(r.static)+len(page))
	r.mu.Lock()
	for k, v := range r.static {
		data[k] = v
	}
	r.mu.Unlock()
	for k, v := range page {
		data[k] = v
	}
	return t.ExecuteTemplate(w, "layout", data)
}
