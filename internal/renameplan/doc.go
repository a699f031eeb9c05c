// Package renameplan builds the original-to-final path mapping for an export
// archive.
//
// The archive's directory tree is implicit: intermediate directories usually
// have no entry of their own and must be reconstructed from entry paths before
// anything can be renamed, because a renamed parent changes every descendant's
// full path. Build walks the reconstructed tree breadth-first, strips and
// sanitizes each sibling set, resolves collisions with " (i)" suffixes, and
// accumulates final paths from already-final ancestor segments. Optionally a
// page's markdown file is relocated into its same-named sibling directory as
// "!index.md".
//
// The resulting Plan is total (covers every entry and every intermediate
// directory), injective, and immutable; the link rewriter borrows it read-only.
package renameplan
