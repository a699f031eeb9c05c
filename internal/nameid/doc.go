// Package nameid strips the opaque identifier suffixes the exporting service
// appends to file and directory names.
//
// The exporter tags every exported page and asset with a 32-character
// hexadecimal identifier, separated from the human-readable title by a single
// space and placed immediately before the extension (or at the end for
// directories). Canonicalize removes exactly that token and nothing else:
// identifiers embedded mid-name stay, malformed near-hex runs stay, and a
// segment that is nothing but an identifier keeps it rather than collapsing
// to an empty name.
package nameid
