// Package config loads, normalizes, and validates exportfix configuration.
//
// It supplies repository defaults, expands tilde shortcuts, reads TOML files,
// and centralizes every knob the CLI needs. Always obtain settings through
// this package so downstream code receives sanitized paths, canonical log
// formats, and clear validation errors.
package config
