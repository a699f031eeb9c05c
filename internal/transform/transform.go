package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"exportfix/internal/archive"
	"exportfix/internal/linkrewrite"
	"exportfix/internal/logging"
	"exportfix/internal/renameplan"
)

// ErrEmptyInput reports a transform invoked with no entries.
var ErrEmptyInput = errors.New("transform: empty entry set")

// Options holds the per-run transform switches.
type Options struct {
	RewriteLinks bool
	RemoveTitle  bool
	MoveIndexMD  bool
	Workers      int
}

// Report summarizes one transform run.
type Report struct {
	RunID           string `json:"run_id"`
	Entries         int    `json:"entries"`
	Renamed         int    `json:"renamed"`
	LinksRewritten  int    `json:"links_rewritten"`
	LinksUnresolved int    `json:"links_unresolved"`
}

// Result carries the transformed entries along with the run report and the
// plan that produced them.
type Result struct {
	Entries []archive.Entry
	Plan    *renameplan.Plan
	Report  Report
}

// Run builds the rename plan from the complete entry set, then rewrites every
// entry against it. The plan phase finishes before any content is touched: a
// link in one entry may point at an entry processed earlier or later, so the
// mapping must be total first. The rewrite phase fans out across workers;
// results keep input order.
func Run(ctx context.Context, entries []archive.Entry, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(entries) == 0 {
		return nil, ErrEmptyInput
	}

	runID := uuid.NewString()
	logger = logging.NewComponentLogger(logger, "transform").
		With(logging.String(logging.FieldRunID, runID))

	plan, err := renameplan.Build(archive.Paths(entries), renameplan.Options{MoveIndexMD: opts.MoveIndexMD})
	if err != nil {
		return nil, fmt.Errorf("build rename plan: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var renamed, rewritten, unresolved atomic.Int64
	out := make([]archive.Entry, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			newPath, ok := plan.Lookup(entry.Path)
			if !ok {
				// The plan is built from this exact entry set.
				return fmt.Errorf("transform: entry %s missing from rename plan", entry.Path)
			}
			if newPath != entry.Path {
				renamed.Add(1)
			}
			data := entry.Data
			if entry.Text {
				if opts.RemoveTitle {
					data = stripLeadingTitle(entry.Path, data)
				}
				if opts.RewriteLinks {
					next, stats := linkrewrite.Rewrite(entry.Path, data, plan, logger)
					rewritten.Add(int64(stats.Rewritten))
					unresolved.Add(int64(stats.Unresolved))
					data = next
				}
			}
			out[i] = archive.Entry{
				Path:     newPath,
				Text:     entry.Text,
				Modified: entry.Modified,
				Data:     data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := Report{
		RunID:           runID,
		Entries:         len(entries),
		Renamed:         int(renamed.Load()),
		LinksRewritten:  int(rewritten.Load()),
		LinksUnresolved: int(unresolved.Load()),
	}
	logger.Info("transform complete",
		logging.Int("entries", report.Entries),
		logging.Int("renamed", report.Renamed),
		logging.Int("links_rewritten", report.LinksRewritten),
		logging.Int("links_unresolved", report.LinksUnresolved))

	return &Result{Entries: out, Plan: plan, Report: report}, nil
}

// stripLeadingTitle removes the first line of a markdown entry when it is an
// H1 heading.
func stripLeadingTitle(path string, data []byte) []byte {
	if !strings.HasSuffix(strings.ToLower(path), ".md") {
		return data
	}
	text := string(data)
	if !strings.HasPrefix(text, "# ") {
		return data
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return []byte(text[i+1:])
	}
	return nil
}
