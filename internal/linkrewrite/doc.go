// Package linkrewrite retargets internal links after an archive rename.
//
// Rewriting is a text-pattern problem, not a parsing problem: the scanner
// recognizes exactly the link shapes the exporter emits — markdown links and
// images, plus bare relative paths inside CSV cells — and leaves everything
// else alone. External URLs are never touched. Targets are percent-decoded,
// resolved against the entry's original directory, looked up in the rename
// plan, and re-emitted as a relative path from the entry's final directory
// with the original fragment preserved. A target absent from the plan stays
// byte-identical and produces a warning instead of failing the run.
//
// Substitution happens in one left-to-right pass over a decoded string, so
// replacements can never corrupt adjacent matches.
package linkrewrite
