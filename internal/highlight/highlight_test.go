package highlight

import (
	"reflect"
	"testing"
)

const body = "intro\n```go\nfunc main() {}\n```\ntext\n```python\npass\n```\nmore\n```go\nagain\n```\n"

func TestMarkdownLanguages(t *testing.T) {
	got := MarkdownLanguages(body)
	want := []string{"go", "python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MarkdownLanguages = %v, want %v", got, want)
	}
}

func TestMarkdownLanguagesIgnoresBareFences(t *testing.T) {
	if got := MarkdownLanguages("```\nno lang\n```\n"); got != nil {
		t.Errorf("bare fence produced %v", got)
	}
}

func TestForPostFiltersUnavailable(t *testing.T) {
	m := New([]string{"go", "rust"})
	got := m.ForPost(body)
	want := []string{"go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ForPost = %v, want %v", got, want)
	}
}
