package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Jacoboon/GameWatcher/internal/repair"
)

func newInventoryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List voice files available per speaker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			runner, err := repair.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			inv, err := runner.Inventory(cmd.Context())
			if err != nil {
				return err
			}

			speakers := inv.Speakers()
			if asJSON {
				return writeJSON(cmd, speakers)
			}
			out := cmd.OutOrStdout()
			if len(speakers) == 0 {
				fmt.Fprintf(out, "No %s files found under %s\n", cfg.Inventory.Extension, cfg.Paths.Voices)
				return nil
			}
			rows := make([][]string, 0, len(speakers))
			for _, s := range speakers {
				rows = append(rows, []string{s.Name, strconv.Itoa(s.Available)})
			}
			fmt.Fprintln(out, renderTable([]string{"Speaker", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))
			fmt.Fprintf(out, "%d files for %d speakers in %s\n", inv.Total(), len(speakers), cfg.Paths.Voices)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the inventory as JSON")
	return cmd
}
