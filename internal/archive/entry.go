package archive

import (
	"strings"
	"time"
)

// Entry is one archive member: a slash-separated path, whether its content is
// rewritable text, the modification time carried from the source container,
// and the raw bytes. Entries are never mutated; transformation produces new
// values.
type Entry struct {
	Path     string
	Text     bool
	Modified time.Time
	Data     []byte
}

// StripCommonRoot removes a shared top-level directory from every entry path.
// The exporter wraps everything in a single "Export-<id>" folder; stripping it
// keeps output trees rooted at the content. Entries are returned unchanged
// when no single common root exists or when stripping would empty a path.
func StripCommonRoot(entries []Entry) []Entry {
	root := ""
	for _, e := range entries {
		i := strings.IndexByte(e.Path, '/')
		if i < 0 {
			return entries
		}
		top := e.Path[:i]
		if root == "" {
			root = top
		} else if top != root {
			return entries
		}
	}
	if root == "" {
		return entries
	}
	stripped := make([]Entry, len(entries))
	for i, e := range entries {
		e.Path = e.Path[len(root)+1:]
		stripped[i] = e
	}
	return stripped
}

// Paths returns every entry path in listing order.
func Paths(entries []Entry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}
