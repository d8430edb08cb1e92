// Package loader reads source documents from a content directory and turns
// them into validated Post records. A document is a YAML metadata block,
// terminated by the first "---" line, followed by the Markdown body verbatim.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/amiaverse/amiablog/models"
)

const (
	separator  = "---"
	dateLayout = "2006-01-02"

	// maxParallelParse bounds concurrent file reads during a load.
	maxParallelParse = 8
)

// frontMatter mirrors the metadata block. Required fields are pointers so a
// missing key is distinguishable from a zero value; the loader never coerces
// or drops fields silently.
type frontMatter struct {
	Title        *string   `yaml:"title"`
	Description  *string   `yaml:"description"`
	Date         *string   `yaml:"date"`
	LastModified *string   `yaml:"last_modified"`
	Tags         *[]string `yaml:"tags"`
	Keywords     []string  `yaml:"keywords"`
	Published    *bool     `yaml:"published"`
	Author       *string   `yaml:"author"`
}

// Load parses every .md document under dir and returns the published posts in
// filename order. Any invalid document, published or not, fails the whole
// load: a half-built corpus is worse than no corpus.
func Load(dir string) ([]models.Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		files = append(files, e.Name())
	}

	type parsed struct {
		post      models.Post
		published bool
	}
	results := make([]parsed, len(files))

	var g errgroup.Group
	g.SetLimit(maxParallelParse)
	for i, name := range files {
		g.Go(func() error {
			post, published, err := ParseFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			results[i] = parsed{post: post, published: published}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// os.ReadDir returns entries sorted by name, so the emitted order is
	// deterministic regardless of parse scheduling.
	posts := make([]models.Post, 0, len(results))
	for _, r := range results {
		if r.published {
			posts = append(posts, r.post)
		}
	}
	return posts, nil
}

// ParseFile parses a single document. The second return reports whether the
// document is published; unpublished documents are still fully validated.
func ParseFile(path string) (models.Post, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Post{}, false, fmt.Errorf("reading %s: %w", path, err)
	}

	meta, body, err := split(string(raw))
	if err != nil {
		return models.Post{}, false, &models.DocumentError{File: path, Field: "separator", Msg: err.Error()}
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return models.Post{}, false, &models.DocumentError{File: path, Field: "metadata", Msg: err.Error()}
	}

	post, err := fm.validate(path)
	if err != nil {
		return models.Post{}, false, err
	}

	post.Slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	post.Body = body
	post.SourceFile = path
	return post, *fm.Published, nil
}

// split divides a document at the first separator line. Later separator lines
// belong to the body.
func split(doc string) (meta, body string, err error) {
	lines := strings.SplitN(doc, "\n", -1)
	for i, line := range lines {
		if strings.TrimRight(line, "\r") == separator {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n"), nil
		}
	}
	return "", "", fmt.Errorf("no %q separator line found", separator)
}

func (fm frontMatter) validate(path string) (models.Post, error) {
	fail := func(field, msg string) (models.Post, error) {
		return models.Post{}, &models.DocumentError{File: path, Field: field, Msg: msg}
	}

	if fm.Title == nil || strings.TrimSpace(*fm.Title) == "" {
		return fail("title", "required and non-empty")
	}
	if fm.Description == nil || strings.TrimSpace(*fm.Description) == "" {
		return fail("description", "required and non-empty")
	}
	if fm.Author == nil || strings.TrimSpace(*fm.Author) == "" {
		return fail("author", "required and non-empty")
	}
	if fm.Published == nil {
		return fail("published", "required")
	}
	if fm.Tags == nil {
		return fail("tags", "required (may be explicitly empty)")
	}
	if fm.Date == nil {
		return fail("date", "required")
	}
	date, err := time.Parse(dateLayout, *fm.Date)
	if err != nil {
		return fail("date", fmt.Sprintf("not a valid %s date: %v", dateLayout, err))
	}
	if fm.LastModified == nil {
		return fail("last_modified", "required")
	}
	modified, err := time.Parse(dateLayout, *fm.LastModified)
	if err != nil {
		return fail("last_modified", fmt.Sprintf("not a valid %s date: %v", dateLayout, err))
	}

	return models.Post{
		Title:        *fm.Title,
		Description:  *fm.Description,
		Date:         date,
		LastModified: modified,
		Tags:         *fm.Tags,
		Keywords:     fm.Keywords,
		Author:       *fm.Author,
	}, nil
}
