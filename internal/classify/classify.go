package classify

import (
	"path"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// textExtensions lists the entry types the exporter emits with rewritable
// content. Everything else is treated as an opaque asset unless sniffing says
// otherwise.
var textExtensions = map[string]bool{
	".md":   true,
	".csv":  true,
	".txt":  true,
	".html": true,
	".htm":  true,
}

// TextBearing reports whether the archive entry at p should be treated as
// rewritable text. Known text extensions qualify when the content is valid
// UTF-8; extensionless entries fall back to MIME sniffing. Entries with a
// non-text extension are always opaque.
func TextBearing(p string, data []byte) bool {
	ext := strings.ToLower(path.Ext(p))
	if textExtensions[ext] {
		return utf8.Valid(data)
	}
	if ext != "" {
		return false
	}
	if !utf8.Valid(data) {
		return false
	}
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		if mt.Is("text/plain") {
			return true
		}
	}
	return false
}
