package linkrewrite

import (
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"exportfix/internal/logging"
	"exportfix/internal/renameplan"
)

// mdLinkPattern matches markdown links and images, capturing the target. The
// target class mirrors the shapes the exporter emits; the lazy quantifier
// stops at the first closing parenthesis.
var mdLinkPattern = regexp.MustCompile(`!?\[.+?\]\(([\w\-._~:/?=#%\]\[@!$&'()*+,;]+?)\)`)

// csvPathPattern matches relative archive paths inside CSV cells: at least one
// slash-separated segment followed by a final segment with an optional
// extension. Scheme detection is handled in code since the class admits no
// colon.
var csvPathPattern = regexp.MustCompile(`(?:[\w\-.~%]+/)+[\w\-.~%]+(?:\.[A-Za-z0-9]+)?`)

// Stats summarizes one entry's rewrite.
type Stats struct {
	Rewritten  int
	Unresolved int
}

type outcome int

const (
	outcomeRewritten outcome = iota
	outcomeExternal
	outcomeUnresolved
	outcomeMalformed
)

// Rewrite substitutes every resolvable relative link in a text-bearing
// entry's content with the corresponding final path from the plan. Targets
// that do not resolve to a known archive path are left byte-identical and
// logged. The entry's own original path must be covered by the plan.
func Rewrite(origPath string, content []byte, plan *renameplan.Plan, logger *slog.Logger) ([]byte, Stats) {
	var stats Stats
	if logger == nil {
		logger = logging.NewNop()
	}
	if !utf8.Valid(content) {
		logger.Warn("entry content is not UTF-8; copied without rewriting",
			logging.String(logging.FieldEntry, origPath))
		return content, stats
	}

	text := string(content)
	var out string
	if strings.EqualFold(path.Ext(origPath), ".csv") {
		out = rewriteCSV(origPath, text, plan, logger, &stats)
	} else {
		out = rewriteMarkdown(origPath, text, plan, logger, &stats)
	}
	if out == text {
		return content, stats
	}
	return []byte(out), stats
}

func rewriteMarkdown(origPath, text string, plan *renameplan.Plan, logger *slog.Logger, stats *Stats) string {
	matches := mdLinkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		start, end := m[2], m[3]
		target := text[start:end]
		if strings.Contains(target, ":/") || strings.HasPrefix(target, "mailto:") {
			continue
		}
		replacement, result, terr := rewriteTarget(origPath, target, plan)
		recordOutcome(origPath, target, result, terr, logger, stats)
		if result != outcomeRewritten {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(replacement)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func rewriteCSV(origPath, text string, plan *renameplan.Plan, logger *slog.Logger, stats *Stats) string {
	matches := csvPathPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		// A candidate preceded by ':' or '/' is the tail of a URL, not an
		// archive path.
		if start > 0 && (text[start-1] == ':' || text[start-1] == '/') {
			continue
		}
		target := text[start:end]
		replacement, result, terr := rewriteTarget(origPath, target, plan)
		recordOutcome(origPath, target, result, terr, logger, stats)
		if result != outcomeRewritten {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString(replacement)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

// rewriteTarget maps one raw link target to its post-rename relative form.
// The fragment, if any, is carried over verbatim.
func rewriteTarget(origPath, target string, plan *renameplan.Plan) (string, outcome, error) {
	rawPath, fragment := splitFragment(target)
	if rawPath == "" {
		// Pure in-page anchor.
		return "", outcomeExternal, nil
	}
	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return "", outcomeMalformed, err
	}
	absOrig := resolve(path.Dir(origPath), decoded)
	if absOrig == "" {
		return "", outcomeUnresolved, nil
	}
	finalAbs, ok := plan.Lookup(absOrig)
	if !ok {
		return "", outcomeUnresolved, nil
	}
	selfFinal, ok := plan.Lookup(origPath)
	if !ok {
		return "", outcomeUnresolved, nil
	}
	rel := relSlash(path.Dir(selfFinal), finalAbs)
	return escapePath(rel) + fragment, outcomeRewritten, nil
}

func recordOutcome(origPath, target string, result outcome, err error, logger *slog.Logger, stats *Stats) {
	switch result {
	case outcomeRewritten:
		stats.Rewritten++
	case outcomeUnresolved:
		stats.Unresolved++
		logger.Warn("link target not found in archive; left unchanged",
			logging.String(logging.FieldEntry, origPath),
			logging.String(logging.FieldTarget, target))
	case outcomeMalformed:
		stats.Unresolved++
		logger.Warn("link target has invalid percent-encoding; left unchanged",
			logging.String(logging.FieldEntry, origPath),
			logging.String(logging.FieldTarget, target),
			logging.Error(err))
	}
}

// splitFragment splits a raw link target at the first '#'. The fragment keeps
// its own encoding so it can be re-appended verbatim.
func splitFragment(target string) (rawPath, fragment string) {
	if i := strings.IndexByte(target, '#'); i >= 0 {
		return target[:i], target[i:]
	}
	return target, ""
}

// resolve joins a decoded relative target against the entry's directory and
// rejects anything that escapes the archive root.
func resolve(dir, target string) string {
	joined := path.Join(dir, target)
	if joined == "" || joined == "." || joined == ".." || strings.HasPrefix(joined, "../") {
		return ""
	}
	return joined
}

// relSlash computes the relative slash path from fromDir to target, both
// expressed relative to the archive root.
func relSlash(fromDir, target string) string {
	if fromDir == "." || fromDir == "" {
		return target
	}
	from := strings.Split(fromDir, "/")
	to := strings.Split(target, "/")
	shared := 0
	for shared < len(from) && shared < len(to) && from[shared] == to[shared] {
		shared++
	}
	segs := make([]string, 0, len(from)-shared+len(to)-shared)
	for i := shared; i < len(from); i++ {
		segs = append(segs, "..")
	}
	segs = append(segs, to[shared:]...)
	if len(segs) == 0 {
		return "."
	}
	return strings.Join(segs, "/")
}

const upperhex = "0123456789ABCDEF"

// escapePath percent-encodes a slash path the way the exporter does: segment
// separators and RFC 3986 unreserved bytes stay literal, everything else is
// escaped. Parentheses must be escaped or they terminate the markdown target.
func escapePath(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteByte(c)
		case c == '/' || c == '-' || c == '.' || c == '_' || c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}
	return b.String()
}
