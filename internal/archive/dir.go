package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"exportfix/internal/classify"
)

// ReadDir loads every regular file under root, paths relative to root with
// forward slashes, in lexical walk order.
func ReadDir(root string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		entries = append(entries, Entry{
			Path:     name,
			Text:     classify.TextBearing(name, data),
			Modified: info.ModTime(),
			Data:     data,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", root, ErrEmptyArchive)
	}
	return entries, nil
}

// WriteDir materializes entries under dest, restoring modification times.
// Paths are validated against escaping the destination root.
func WriteDir(dest string, entries []Entry) error {
	if len(entries) == 0 {
		return ErrEmptyArchive
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolve destination %s: %w", dest, err)
	}
	for _, e := range entries {
		target := filepath.Join(destAbs, filepath.FromSlash(e.Path))
		if !strings.HasPrefix(target, destAbs+string(filepath.Separator)) {
			return fmt.Errorf("entry %s escapes destination %s", e.Path, dest)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("ensure directory for %s: %w", e.Path, err)
		}
		if err := os.WriteFile(target, e.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", e.Path, err)
		}
		if !e.Modified.IsZero() {
			if err := os.Chtimes(target, e.Modified, e.Modified); err != nil {
				return fmt.Errorf("set times on %s: %w", e.Path, err)
			}
		}
	}
	return nil
}
