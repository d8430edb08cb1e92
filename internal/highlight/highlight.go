// Package highlight picks the highlight.js grammars a rendered post needs by
// scanning its Markdown code fences, so pages only load the languages they use.
package highlight

import (
	"regexp"
)

var fenceRe = regexp.MustCompile("(?m)^```([A-Za-z0-9_+#-]+)")

// Manager filters fence language hints against the configured grammar set.
type Manager struct {
	available map[string]struct{}
}

func New(available []string) *Manager {
	m := &Manager{available: make(map[string]struct{}, len(available))}
	for _, lang := range available {
		m.available[lang] = struct{}{}
	}
	return m
}

// MarkdownLanguages returns every fence language hint in body, deduplicated,
// in order of first appearance.
func MarkdownLanguages(body string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, match := range fenceRe.FindAllStringSubmatch(body, -1) {
		lang := match[1]
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out
}

// ForPost intersects the body's fence hints with the available grammar set.
func (m *Manager) ForPost(body string) []string {
	var out []string
	for _, lang := range MarkdownLanguages(body) {
		if _, ok := m.available[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}
