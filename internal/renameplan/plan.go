package renameplan

import (
	"fmt"
	"sort"
	"strings"

	"exportfix/internal/nameid"
	"exportfix/internal/textutil"
)

// Plan is the total mapping from every original archive path — entries and
// intermediate directories alike — to its final path. A Plan is immutable
// once built and safe for concurrent readers.
type Plan struct {
	paths map[string]string
}

// Pair couples an original path with its final path.
type Pair struct {
	Original string `json:"original"`
	Final    string `json:"final"`
}

// Options selects optional plan rules.
type Options struct {
	// MoveIndexMD relocates a markdown file into a sibling directory bearing
	// the same original name, renaming it to "!index.md". The export format
	// pairs a page's markdown with a same-named folder of its children;
	// nesting the page keeps it next to them.
	MoveIndexMD bool
}

// node is one level of the reconstructed directory tree. Children keep the
// original archive listing order; sibling order drives collision suffixes.
// reserved holds final names pre-claimed by relocated markdown files before
// the node's own children are resolved.
type node struct {
	children map[string]*node
	order    []string
	reserved []string
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) child(name string) *node {
	c, ok := n.children[name]
	if !ok {
		c = newNode()
		n.children[name] = c
		n.order = append(n.order, name)
	}
	return c
}

// Build reconstructs the implicit directory tree from the full set of entry
// paths and resolves names level by level, parents before children, so every
// descendant path is assembled from already-final ancestor segments. The
// returned mapping is injective: no two original paths share a final path.
func Build(paths []string, opts Options) (*Plan, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("rename plan: empty path set")
	}
	root := newNode()
	for _, p := range paths {
		if p == "" || strings.HasPrefix(p, "/") {
			return nil, fmt.Errorf("rename plan: malformed archive path %q", p)
		}
		cur := root
		for _, seg := range strings.Split(strings.TrimSuffix(p, "/"), "/") {
			if seg == "" || seg == "." || seg == ".." {
				return nil, fmt.Errorf("rename plan: malformed archive path %q", p)
			}
			cur = cur.child(seg)
		}
	}

	plan := &Plan{paths: make(map[string]string)}
	type frame struct {
		node     *node
		origPath string
		newPath  string
	}
	queue := []frame{{node: root}}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		var moved map[string]string
		order := f.node.order
		if opts.MoveIndexMD {
			moved = indexMoves(f.node)
		}
		if len(moved) > 0 {
			order = make([]string, 0, len(f.node.order))
			for _, name := range f.node.order {
				if _, ok := moved[name]; !ok {
					order = append(order, name)
				}
			}
		}

		finals := resolveSiblings(order, f.node.reserved)
		for _, name := range order {
			orig := joinPath(f.origPath, name)
			next := joinPath(f.newPath, finals[name])
			plan.paths[orig] = next
			queue = append(queue, frame{node: f.node.children[name], origPath: orig, newPath: next})
		}

		// Relocated markdown files land inside their directory's final path;
		// the name is reserved now so the directory's own children cannot
		// claim it when their level is resolved.
		for _, name := range f.node.order {
			dirName, ok := moved[name]
			if !ok {
				continue
			}
			dir := f.node.children[dirName]
			orig := joinPath(f.origPath, name)
			plan.paths[orig] = joinPath(joinPath(f.newPath, finals[dirName]), reserveIndexName(dir))
		}
	}
	return plan, nil
}

// indexMoves finds markdown children whose stem matches a sibling directory's
// original name. The match runs on original names, before any stripping, so a
// page's markdown pairs with the folder the exporter wrote next to it.
func indexMoves(n *node) map[string]string {
	var moves map[string]string
	for _, name := range n.order {
		if len(n.children[name].children) != 0 {
			continue
		}
		stem, ext := nameid.SplitExt(name)
		if !strings.EqualFold(ext, ".md") {
			continue
		}
		dir, ok := n.children[stem]
		if !ok || len(dir.children) == 0 {
			continue
		}
		if moves == nil {
			moves = make(map[string]string)
		}
		moves[name] = stem
	}
	return moves
}

// reserveIndexName claims the smallest free "!index.md" variant inside dir,
// considering both its original children and earlier reservations.
func reserveIndexName(dir *node) string {
	taken := func(name string) bool {
		if _, ok := dir.children[name]; ok {
			return true
		}
		for _, r := range dir.reserved {
			if r == name {
				return true
			}
		}
		return false
	}
	name := "!index.md"
	for i := 1; taken(name); i++ {
		name = fmt.Sprintf("!index (%d).md", i)
	}
	dir.reserved = append(dir.reserved, name)
	return name
}

// resolveSiblings assigns each original sibling segment a unique final
// segment within one directory level. Segments the stripper left untouched
// own their name outright; stripped segments then claim their canonical name
// in archive listing order, falling back to the smallest " (i)" suffix not in
// use at this level. Files and directories compete in the same namespace, and
// reserved names are off limits from the start.
func resolveSiblings(order []string, reserved []string) map[string]string {
	finals := make(map[string]string, len(order))
	used := make(map[string]bool, len(order)+len(reserved))
	canonicals := make(map[string]string, len(order))
	for _, r := range reserved {
		used[r] = true
	}

	// A name that needed no change must never be renamed out from under an
	// incoming stripped name, wherever it sits in the listing.
	for _, original := range order {
		canonical := canonicalSegment(original)
		canonicals[original] = canonical
		if canonical == original && !used[canonical] {
			used[canonical] = true
			finals[original] = canonical
		}
	}

	for _, original := range order {
		if _, done := finals[original]; done {
			continue
		}
		candidate := canonicals[original]
		if !used[candidate] {
			used[candidate] = true
			finals[original] = candidate
			continue
		}
		stem, ext := nameid.SplitExt(candidate)
		for i := 1; ; i++ {
			suffixed := fmt.Sprintf("%s (%d)%s", stem, i, ext)
			if !used[suffixed] {
				used[suffixed] = true
				finals[original] = suffixed
				break
			}
		}
	}
	return finals
}

// canonicalSegment strips the trailing identifier and sanitizes the stem,
// keeping the extension intact.
func canonicalSegment(original string) string {
	stem, ext := nameid.SplitExt(nameid.Canonicalize(original))
	return textutil.SanitizeSegment(stem) + ext
}

// Lookup returns the final path for an original path.
func (p *Plan) Lookup(original string) (string, bool) {
	final, ok := p.paths[original]
	return final, ok
}

// Len reports how many original paths the plan covers, intermediate
// directories included.
func (p *Plan) Len() int {
	return len(p.paths)
}

// Pairs returns every mapping sorted by original path.
func (p *Plan) Pairs() []Pair {
	pairs := make([]Pair, 0, len(p.paths))
	for orig, final := range p.paths {
		pairs = append(pairs, Pair{Original: orig, Final: final})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Original < pairs[j].Original })
	return pairs
}

// Changed returns only the mappings whose final path differs from the
// original, sorted by original path.
func (p *Plan) Changed() []Pair {
	pairs := p.Pairs()
	changed := pairs[:0]
	for _, pair := range pairs {
		if pair.Original != pair.Final {
			changed = append(changed, pair)
		}
	}
	return changed
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
