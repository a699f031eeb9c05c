package nameid

import (
	"path"
	"regexp"
	"strings"
)

// idSuffixPattern matches a segment stem that ends in a space-separated
// 32-character hexadecimal identifier. The identifier must be the final token
// of the stem; identifier-shaped runs elsewhere in the name do not match.
var idSuffixPattern = regexp.MustCompile(`^(.+?) ([0-9a-fA-F]{32})$`)

// Canonicalize removes the trailing export identifier from a single path
// segment, keeping the extension intact. Segments without a trailing
// identifier are returned unchanged, as are segments that consist solely of
// an identifier (stripping must never yield an empty name).
func Canonicalize(segment string) string {
	stem, ext := SplitExt(segment)
	m := idSuffixPattern.FindStringSubmatch(stem)
	if m == nil {
		return segment
	}
	return m[1] + ext
}

// SplitExt splits a segment into stem and extension. A segment whose only dot
// is the leading one (".gitignore") is treated as having no extension.
func SplitExt(segment string) (stem, ext string) {
	ext = path.Ext(segment)
	stem = strings.TrimSuffix(segment, ext)
	if stem == "" {
		return segment, ""
	}
	return stem, ext
}
