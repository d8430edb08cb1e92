package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amiaverse/amiablog/models"
)

const validDoc = `title: Hello World
description: First post
date: 2024-03-01
last_modified: 2024-03-02
tags: [intro, meta]
keywords: [hello]
published: true
author: amia
---
# Hello

Body text here.
`

func writeDoc(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestParseFileValid(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "hello-world.md", validDoc)

	post, published, err := ParseFile(filepath.Join(dir, "hello-world.md"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if !published {
		t.Error("expected published")
	}
	if post.Slug != "hello-world" {
		t.Errorf("slug = %q, want %q", post.Slug, "hello-world")
	}
	if post.Title != "Hello World" || post.Author != "amia" {
		t.Errorf("unexpected post: %+v", post)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "intro" {
		t.Errorf("tags = %v", post.Tags)
	}
	if post.Date.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("date = %v", post.Date)
	}
	if post.Body == "" || post.Body[:7] != "# Hello" {
		t.Errorf("body = %q", post.Body)
	}
}

func TestParseFileMissingField(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		field string
	}{
		{"no title", "description: d\ndate: 2024-01-01\nlast_modified: 2024-01-01\ntags: []\npublished: true\nauthor: a\n---\nb", "title"},
		{"empty title", "title: \"\"\ndescription: d\ndate: 2024-01-01\nlast_modified: 2024-01-01\ntags: []\npublished: true\nauthor: a\n---\nb", "title"},
		{"no tags", "title: t\ndescription: d\ndate: 2024-01-01\nlast_modified: 2024-01-01\npublished: true\nauthor: a\n---\nb", "tags"},
		{"no published", "title: t\ndescription: d\ndate: 2024-01-01\nlast_modified: 2024-01-01\ntags: []\nauthor: a\n---\nb", "published"},
		{"bad date", "title: t\ndescription: d\ndate: not-a-date\nlast_modified: 2024-01-01\ntags: []\npublished: true\nauthor: a\n---\nb", "date"},
		{"no separator", "title: t\ndescription: d\n", "separator"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeDoc(t, dir, "doc.md", tc.doc)
			_, _, err := ParseFile(filepath.Join(dir, "doc.md"))
			var docErr *models.DocumentError
			if !errors.As(err, &docErr) {
				t.Fatalf("expected DocumentError, got %v", err)
			}
			if docErr.Field != tc.field {
				t.Errorf("field = %q, want %q", docErr.Field, tc.field)
			}
			if docErr.File == "" {
				t.Error("error does not identify the file")
			}
		})
	}
}

func TestLoadExcludesUnpublished(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "visible.md", validDoc)
	writeDoc(t, dir, "draft.md",
		"title: Draft\ndescription: d\ndate: 2024-01-01\nlast_modified: 2024-01-01\ntags: []\npublished: false\nauthor: a\n---\nbody")

	posts, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "visible" {
		t.Fatalf("posts = %+v, want only visible", posts)
	}
}

func TestLoadUnpublishedStillValidated(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "broken-draft.md",
		"title: \ndescription: d\ndate: 2024-01-01\nlast_modified: 2024-01-01\ntags: []\npublished: false\nauthor: a\n---\nbody")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected load failure for invalid unpublished document")
	}
}

func TestLoadSeparatorInsideBody(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "rule.md", validDoc+"\n---\nafter the rule\n")

	post, _, err := ParseFile(filepath.Join(dir, "rule.md"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if want := "after the rule"; !strings.Contains(post.Body, want) {
		t.Errorf("body lost content after in-body separator: %q", post.Body)
	}
}
