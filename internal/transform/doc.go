// Package transform orchestrates the rename-and-relink pass over an archive.
//
// A run has two phases with a hard ordering barrier between them: the rename
// plan is built from the complete entry set first, then every entry is
// transformed against the finished, immutable plan. Entry rewriting is
// side-effect-free and fans out across workers; each result lands in its
// input slot so output order is deterministic. Only structural problems
// (an empty entry set, a malformed path) abort the run — unresolved links
// degrade to warnings and the original link text survives.
package transform
