package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"exportfix/internal/archive"
	"exportfix/internal/config"
)

// readInput loads an export from either a zip archive or an extracted
// directory tree, optionally stripping the wrapper folder the exporter puts
// around everything.
func readInput(path string, stripRoot bool) ([]archive.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	var entries []archive.Entry
	if info.IsDir() {
		entries, err = archive.ReadDir(path)
	} else if archive.IsZip(path) {
		entries, err = archive.ReadZip(path)
	} else {
		return nil, fmt.Errorf("input %s is neither a directory nor a zip archive", path)
	}
	if err != nil {
		return nil, err
	}
	if stripRoot {
		entries = archive.StripCommonRoot(entries)
	}
	return entries, nil
}

// defaultOutputPath derives the fixed archive location from the input name
// and the configured output directory and suffix.
func defaultOutputPath(cfg *config.Config, input string) string {
	base := filepath.Base(filepath.Clean(input))
	if strings.EqualFold(filepath.Ext(base), ".zip") {
		base = base[:len(base)-len(".zip")]
	}
	return filepath.Join(cfg.Output.Dir, base+cfg.Output.Suffix)
}
