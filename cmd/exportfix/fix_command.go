package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"exportfix/internal/archive"
	"exportfix/internal/transform"
)

type fixOutput struct {
	transform.Report
	Output  string `json:"output"`
	DestDir string `json:"dest_dir,omitempty"`
}

func newFixCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var destDirFlag string
	var removeTitleFlag bool
	var noRewriteFlag bool
	var noMoveIndexFlag bool
	var workersFlag int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "fix <zip-or-dir>",
		Short: "Rename entries, rewrite links, and write the fixed archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			input := args[0]
			entries, err := readInput(input, cfg.Transform.StripCommonRoot)
			if err != nil {
				return err
			}

			opts := transform.Options{
				RewriteLinks: cfg.Transform.RewriteLinks && !noRewriteFlag,
				RemoveTitle:  cfg.Transform.RemoveTitle || removeTitleFlag,
				MoveIndexMD:  cfg.Transform.MoveIndexMD && !noMoveIndexFlag,
				Workers:      cfg.Transform.Workers,
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workersFlag
			}

			result, err := transform.Run(cmd.Context(), entries, opts, logger)
			if err != nil {
				return err
			}

			outPath := outputFlag
			if outPath == "" {
				outPath = defaultOutputPath(cfg, input)
			}

			lock := flock.New(outPath + ".lock")
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("lock output %s: %w", outPath, err)
			}
			if !locked {
				return fmt.Errorf("output %s is being written by another exportfix run", outPath)
			}
			defer func() {
				_ = lock.Unlock()
				_ = os.Remove(lock.Path())
			}()

			archive.SortByPath(result.Entries)
			if err := archive.WriteZip(outPath, result.Entries); err != nil {
				return err
			}
			if destDirFlag != "" {
				if err := archive.WriteDir(destDirFlag, result.Entries); err != nil {
					return err
				}
			}

			if jsonFlag {
				return writeJSON(cmd, fixOutput{Report: result.Report, Output: outPath, DestDir: destDirFlag})
			}

			rows := [][]string{
				{"Entries", strconv.Itoa(result.Report.Entries)},
				{"Renamed", strconv.Itoa(result.Report.Renamed)},
				{"Links rewritten", strconv.Itoa(result.Report.LinksRewritten)},
				{"Links unresolved", strconv.Itoa(result.Report.LinksUnresolved)},
				{"Output", outPath},
			}
			if destDirFlag != "" {
				rows = append(rows, []string{"Extracted to", destDirFlag})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Path for the fixed zip archive")
	cmd.Flags().StringVar(&destDirFlag, "dest-dir", "", "Also extract the fixed tree under this directory")
	cmd.Flags().BoolVar(&removeTitleFlag, "remove-title", false, "Drop the leading H1 heading from markdown entries")
	cmd.Flags().BoolVar(&noRewriteFlag, "no-rewrite-links", false, "Rename entries without touching link targets")
	cmd.Flags().BoolVar(&noMoveIndexFlag, "no-move-index", false, "Keep markdown files beside their same-named folders instead of nesting them as !index.md")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Rewrite worker count (0 uses all CPUs)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the run report as JSON")

	return cmd
}
