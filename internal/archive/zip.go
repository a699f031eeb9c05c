package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"

	"exportfix/internal/classify"
)

// ErrEmptyArchive reports a container with no file entries.
var ErrEmptyArchive = errors.New("archive contains no entries")

// IsZip reports whether the file at p is a readable zip container.
func IsZip(p string) bool {
	r, err := zip.OpenReader(p)
	if err != nil {
		return false
	}
	_ = r.Close()
	return true
}

// ReadZip loads every file entry from the zip at p in listing order. When the
// container carries a single .zip file at its top level — the exporter
// double-wraps downloads — the inner archive is read instead and any other
// top-level packaging entries are dropped.
func ReadZip(p string) ([]Entry, error) {
	r, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", p, err)
	}
	defer r.Close()

	entries, err := readZipEntries(&r.Reader)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", p, err)
	}
	if inner, ok := innerWrapper(entries); ok {
		entries, err = readWrappedZip(inner)
		if err != nil {
			return nil, fmt.Errorf("read inner archive in %s: %w", p, err)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", p, ErrEmptyArchive)
	}
	return entries, nil
}

func readZipEntries(r *zip.Reader) ([]Entry, error) {
	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		name := normalizeZipPath(f.Name)
		if name == "" || strings.HasSuffix(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read entry %s: %w", f.Name, err)
		}
		entries = append(entries, Entry{
			Path:     name,
			Text:     classify.TextBearing(name, data),
			Modified: f.Modified,
			Data:     data,
		})
	}
	return entries, nil
}

// innerWrapper detects the double-wrapped layout: exactly one zip file at the
// top level of the container. Other top-level entries do not block detection;
// the wrapper holds the real export and the rest is download packaging.
func innerWrapper(entries []Entry) (Entry, bool) {
	var wrapper Entry
	count := 0
	for _, e := range entries {
		if strings.ContainsRune(e.Path, '/') {
			continue
		}
		if strings.EqualFold(path.Ext(e.Path), ".zip") {
			wrapper = e
			count++
		}
	}
	if count != 1 {
		return Entry{}, false
	}
	return wrapper, true
}

func readWrappedZip(wrapper Entry) ([]Entry, error) {
	r, err := zip.NewReader(bytes.NewReader(wrapper.Data), int64(len(wrapper.Data)))
	if err != nil {
		return nil, fmt.Errorf("open wrapper %s: %w", wrapper.Path, err)
	}
	return readZipEntries(r)
}

// WriteZip serializes entries into a new zip at p, emitting parent directory
// records and preserving entry modification times. Deflate goes through the
// klauspost encoder.
func WriteZip(p string, entries []Entry) (err error) {
	if len(entries) == 0 {
		return ErrEmptyArchive
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("create archive %s: %w", p, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close archive %s: %w", p, cerr)
		}
	}()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	emitted := make(map[string]bool)
	for _, e := range entries {
		if err := emitParentDirs(zw, e.Path, e.Modified, emitted); err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Path,
			Method:   zip.Deflate,
			Modified: zeroToNow(e.Modified),
		})
		if err != nil {
			return fmt.Errorf("write entry %s: %w", e.Path, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			return fmt.Errorf("write entry %s: %w", e.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive %s: %w", p, err)
	}
	return nil
}

func emitParentDirs(zw *zip.Writer, entryPath string, mod time.Time, emitted map[string]bool) error {
	segs := strings.Split(entryPath, "/")
	acc := ""
	for i := 0; i < len(segs)-1; i++ {
		acc += segs[i] + "/"
		if emitted[acc] {
			continue
		}
		emitted[acc] = true
		if _, err := zw.CreateHeader(&zip.FileHeader{Name: acc, Modified: zeroToNow(mod)}); err != nil {
			return fmt.Errorf("write directory %s: %w", acc, err)
		}
	}
	return nil
}

// SortByPath orders entries by path; used to keep output archives
// deterministic regardless of how results were collected.
func SortByPath(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
}

func normalizeZipPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	return strings.Trim(p, "/")
}

func zeroToNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
