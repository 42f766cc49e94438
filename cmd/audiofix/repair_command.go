package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Jacoboon/GameWatcher/internal/repair"
)

const repairLongHelp = "Give every dialogue entry whose audio path is empty or points at a missing\n" +
	"file the next unused recording from voices/<speaker>/. Files are handed out in\n" +
	"directory listing order; their content is not compared with the dialogue text.\n\n" +
	"Runs hold an advisory lock on <catalog>.lock (for example\n" +
	"SimpleLoop/dialogue_catalog.json.lock). The file stays after the run; add\n" +
	"*.lock to the repository's .gitignore."

type repairFlags struct {
	dryRun bool
	json   bool
}

func (f *repairFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Report assignments without writing the catalog")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the repair report as JSON")
}

func newRepairCommand(ctx *commandContext) *cobra.Command {
	opts := &repairFlags{}
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Assign unused voice files to entries with missing audio",
		Long:  repairLongHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(cmd, ctx, *opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runRepair(cmd *cobra.Command, ctx *commandContext, opts repairFlags) error {
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

	report, err := runner.Run(cmd.Context(), repair.RunOptions{DryRun: opts.dryRun})
	if err != nil {
		return err
	}
	if opts.json {
		return writeJSON(cmd, report)
	}
	out := cmd.OutOrStdout()
	printRepairSummary(out, report, shouldColorize(out))
	return nil
}

func printRepairSummary(out io.Writer, report *repair.Report, colorize bool) {
	for _, line := range renderSectionHeader("Audio repair", colorize) {
		fmt.Fprintln(out, line)
	}
	for _, line := range repairStatusLines(report, colorize) {
		fmt.Fprintln(out, line)
	}

	if len(report.Assignments) > 0 {
		rows := make([][]string, 0, len(report.Assignments))
		for _, a := range report.Assignments {
			rows = append(rows, []string{strconv.Itoa(a.Index), a.ID, a.Speaker, a.Text, orDash(a.OldPath), a.NewPath})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(
			[]string{"#", "ID", "Speaker", "Text", "Old path", "New path"},
			rows,
			[]columnAlignment{alignRight},
		))
	}
	if len(report.Unresolved) > 0 {
		rows := make([][]string, 0, len(report.Unresolved))
		for _, u := range report.Unresolved {
			rows = append(rows, []string{strconv.Itoa(u.Index), u.ID, orDash(u.Speaker), orDash(u.AudioPath), string(u.Reason)})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(
			[]string{"#", "ID", "Speaker", "Audio path", "Reason"},
			rows,
			[]columnAlignment{alignRight},
		))
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
