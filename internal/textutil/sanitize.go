package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// segmentReplacer replaces filesystem-unsafe characters with spaces so the
// surrounding words stay separated after collapsing.
var segmentReplacer = strings.NewReplacer(
	"/", " ",
	"\\", " ",
	":", " ",
	"*", " ",
	"?", " ",
	"\"", " ",
	"<", " ",
	">", " ",
	"|", " ",
)

// maxSegmentLength caps sanitized name stems; exported page titles can run to
// thousands of characters and most filesystems stop at 255 bytes per name.
const maxSegmentLength = 200

// SanitizeSegment normalizes a name stem for filesystem use: NFC Unicode
// normalization, unsafe characters replaced, whitespace collapsed to single
// spaces, and the result length-capped. Returns "untitled" if nothing
// printable survives.
func SanitizeSegment(name string) string {
	name = norm.NFC.String(name)
	name = segmentReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if len(name) > maxSegmentLength {
		cut := maxSegmentLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.TrimSpace(name[:cut])
	}
	if name == "" {
		return "untitled"
	}
	return name
}
