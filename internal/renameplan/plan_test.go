package renameplan

import (
	"reflect"
	"testing"
)

const (
	idA = "abcdef0123456789abcdef0123456789"
	idB = "fedcba9876543210fedcba9876543210"
	idC = "0123456789abcdef0123456789abcdef"
)

func mustBuild(t *testing.T, paths []string) *Plan {
	t.Helper()
	return mustBuildOpts(t, paths, Options{})
}

func mustBuildOpts(t *testing.T, paths []string, opts Options) *Plan {
	t.Helper()
	plan, err := Build(paths, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return plan
}

func lookup(t *testing.T, plan *Plan, orig string) string {
	t.Helper()
	final, ok := plan.Lookup(orig)
	if !ok {
		t.Fatalf("Lookup(%q): missing", orig)
	}
	return final
}

func TestBuildStripsIdentifiersThroughTree(t *testing.T) {
	plan := mustBuild(t, []string{
		"Notes " + idA + ".md",
		"Sub " + idA + "/Page " + idB + ".md",
		"Sub " + idA + "/assets/image.png",
	})

	if got := lookup(t, plan, "Notes "+idA+".md"); got != "Notes.md" {
		t.Fatalf("file mapping = %q, want %q", got, "Notes.md")
	}
	if got := lookup(t, plan, "Sub "+idA); got != "Sub" {
		t.Fatalf("directory mapping = %q, want %q", got, "Sub")
	}
	if got := lookup(t, plan, "Sub "+idA+"/Page "+idB+".md"); got != "Sub/Page.md" {
		t.Fatalf("nested mapping = %q, want %q", got, "Sub/Page.md")
	}
	if got := lookup(t, plan, "Sub "+idA+"/assets/image.png"); got != "Sub/assets/image.png" {
		t.Fatalf("asset mapping = %q, want %q", got, "Sub/assets/image.png")
	}
	// Intermediate directory without its own entry is still covered.
	if got := lookup(t, plan, "Sub "+idA+"/assets"); got != "Sub/assets" {
		t.Fatalf("intermediate dir mapping = %q, want %q", got, "Sub/assets")
	}
}

func TestUnchangedNameKeepsItsSpot(t *testing.T) {
	// The stripped file collides with a pre-existing plain Notes.md. The
	// plain file must keep its name no matter which is listed first.
	for _, order := range [][]string{
		{"Notes " + idA + ".md", "Notes.md"},
		{"Notes.md", "Notes " + idA + ".md"},
	} {
		plan := mustBuild(t, order)
		if got := lookup(t, plan, "Notes.md"); got != "Notes.md" {
			t.Fatalf("order %v: plain file renamed to %q", order, got)
		}
		if got := lookup(t, plan, "Notes "+idA+".md"); got != "Notes (1).md" {
			t.Fatalf("order %v: stripped file = %q, want %q", order, got, "Notes (1).md")
		}
	}
}

func TestCollisionSuffixesFollowListingOrder(t *testing.T) {
	plan := mustBuild(t, []string{
		"Page " + idA + ".md",
		"Page " + idB + ".md",
		"Page " + idC + ".md",
	})
	want := map[string]string{
		"Page " + idA + ".md": "Page.md",
		"Page " + idB + ".md": "Page (1).md",
		"Page " + idC + ".md": "Page (2).md",
	}
	for orig, final := range want {
		if got := lookup(t, plan, orig); got != final {
			t.Fatalf("%q = %q, want %q", orig, got, final)
		}
	}
}

func TestDefensiveSuffixSkipsOccupiedNames(t *testing.T) {
	// "Page (1).md" legitimately exists, so the second colliding sibling
	// must jump to (2) instead of reusing (1).
	plan := mustBuild(t, []string{
		"Page (1).md",
		"Page " + idA + ".md",
		"Page " + idB + ".md",
	})
	if got := lookup(t, plan, "Page "+idA+".md"); got != "Page.md" {
		t.Fatalf("first stripped = %q, want Page.md", got)
	}
	if got := lookup(t, plan, "Page "+idB+".md"); got != "Page (2).md" {
		t.Fatalf("second stripped = %q, want Page (2).md", got)
	}
	if got := lookup(t, plan, "Page (1).md"); got != "Page (1).md" {
		t.Fatalf("occupied name moved to %q", got)
	}
}

func TestFileAndDirectoryShareNamespace(t *testing.T) {
	plan := mustBuild(t, []string{
		"Report " + idA,
		"Report " + idB + "/nested.md",
	})
	dir1 := lookup(t, plan, "Report "+idA)
	dir2 := lookup(t, plan, "Report "+idB)
	if dir1 == dir2 {
		t.Fatalf("sibling directories canonicalized to the same name %q", dir1)
	}
}

func TestInjectivity(t *testing.T) {
	plan := mustBuild(t, []string{
		"Notes " + idA + ".md",
		"Notes " + idB + ".md",
		"Notes.md",
		"Notes (1).md",
		"Sub " + idA + "/Page " + idB + ".md",
		"Sub " + idB + "/Page " + idB + ".md",
		"Sub/Page.md",
	})
	seen := make(map[string]string)
	for _, pair := range plan.Pairs() {
		if prev, dup := seen[pair.Final]; dup {
			t.Fatalf("final path %q assigned to both %q and %q", pair.Final, prev, pair.Original)
		}
		seen[pair.Final] = pair.Original
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	paths := []string{
		"Page " + idA + ".md",
		"Page " + idB + ".md",
		"Sub " + idA + "/Page " + idC + ".md",
	}
	first := mustBuild(t, paths).Pairs()
	for i := 0; i < 10; i++ {
		again := mustBuild(t, paths).Pairs()
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced a different plan", i)
		}
	}
}

func TestChangedOmitsIdentityMappings(t *testing.T) {
	plan := mustBuild(t, []string{
		"Notes " + idA + ".md",
		"assets/image.png",
	})
	changed := plan.Changed()
	if len(changed) != 1 {
		t.Fatalf("changed = %v, want one pair", changed)
	}
	if changed[0].Original != "Notes "+idA+".md" || changed[0].Final != "Notes.md" {
		t.Fatalf("unexpected changed pair %+v", changed[0])
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	if _, err := Build(nil, Options{}); err == nil {
		t.Fatal("expected error for empty path set")
	}
	for _, bad := range []string{"", "/abs/path.md", "a//b.md", "a/../b.md"} {
		if _, err := Build([]string{bad}, Options{}); err == nil {
			t.Fatalf("expected error for path %q", bad)
		}
	}
}

func TestMoveIndexNestsMarkdownIntoMatchingFolder(t *testing.T) {
	plan := mustBuildOpts(t, []string{
		"Page " + idA + ".md",
		"Page " + idA + "/Child " + idB + ".md",
	}, Options{MoveIndexMD: true})

	if got := lookup(t, plan, "Page "+idA+".md"); got != "Page/!index.md" {
		t.Fatalf("page file = %q, want %q", got, "Page/!index.md")
	}
	if got := lookup(t, plan, "Page "+idA); got != "Page" {
		t.Fatalf("page folder = %q, want %q", got, "Page")
	}
	if got := lookup(t, plan, "Page "+idA+"/Child "+idB+".md"); got != "Page/Child.md" {
		t.Fatalf("child = %q, want %q", got, "Page/Child.md")
	}
}

func TestMoveIndexMatchesOriginalNamesOnly(t *testing.T) {
	// The folder strips to "Page" but its original name does not match the
	// markdown stem, so the file stays put and takes a collision suffix
	// against the renamed folder only if the names actually clash.
	plan := mustBuildOpts(t, []string{
		"Page.md",
		"Page " + idA + "/Child.md",
	}, Options{MoveIndexMD: true})

	if got := lookup(t, plan, "Page.md"); got != "Page.md" {
		t.Fatalf("file = %q, want Page.md", got)
	}
	if got := lookup(t, plan, "Page "+idA); got != "Page" {
		t.Fatalf("folder = %q, want Page", got)
	}
}

func TestMoveIndexSkipsOccupiedIndexName(t *testing.T) {
	plan := mustBuildOpts(t, []string{
		"Page " + idA + ".md",
		"Page " + idA + "/!index.md",
	}, Options{MoveIndexMD: true})

	if got := lookup(t, plan, "Page "+idA+".md"); got != "Page/!index (1).md" {
		t.Fatalf("moved file = %q, want %q", got, "Page/!index (1).md")
	}
	if got := lookup(t, plan, "Page "+idA+"/!index.md"); got != "Page/!index.md" {
		t.Fatalf("existing index = %q, want %q", got, "Page/!index.md")
	}
}

func TestMoveIndexDisabledKeepsSiblings(t *testing.T) {
	plan := mustBuild(t, []string{
		"Page " + idA + ".md",
		"Page " + idA + "/Child " + idB + ".md",
	})

	if got := lookup(t, plan, "Page "+idA+".md"); got != "Page.md" {
		t.Fatalf("file = %q, want Page.md", got)
	}
	if got := lookup(t, plan, "Page "+idA); got != "Page" {
		t.Fatalf("folder = %q, want Page", got)
	}
}
