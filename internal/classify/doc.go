// Package classify decides which archive entries carry rewritable text.
//
// The transform only touches the content of text-bearing entries; binary
// assets pass through byte-identical. Classification is extension-driven with
// a MIME sniffing fallback for extensionless entries, so an exported page
// saved without a suffix still gets its links rewritten.
package classify
