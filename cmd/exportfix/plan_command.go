package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exportfix/internal/archive"
	"exportfix/internal/renameplan"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var allFlag bool
	var jsonFlag bool
	var noMoveIndexFlag bool

	cmd := &cobra.Command{
		Use:   "plan <zip-or-dir>",
		Short: "Show the rename mapping without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := readInput(args[0], cfg.Transform.StripCommonRoot)
			if err != nil {
				return err
			}
			plan, err := renameplan.Build(archive.Paths(entries), renameplan.Options{
				MoveIndexMD: cfg.Transform.MoveIndexMD && !noMoveIndexFlag,
			})
			if err != nil {
				return err
			}

			pairs := plan.Changed()
			if allFlag {
				pairs = plan.Pairs()
			}

			if jsonFlag {
				return writeJSON(cmd, pairs)
			}
			if len(pairs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to rename")
				return nil
			}
			rows := make([][]string, 0, len(pairs))
			for _, p := range pairs {
				rows = append(rows, []string{p.Original, p.Final})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(), []string{"Original", "Final"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "Include entries whose paths do not change")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the mapping as JSON")
	cmd.Flags().BoolVar(&noMoveIndexFlag, "no-move-index", false, "Keep markdown files beside their same-named folders instead of nesting them as !index.md")

	return cmd
}
