package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deixis/grinderwrap/internal/classify"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "classify [flags] <output_dir> <output_id>",
		Short: "Rename Grinder outputs to Galaxy multiple-output names",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.engine(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				eng.Stdout = io.Discard
			}
			rr, runErr := eng.Classify(args[0], args[1], dryRun)

			switch {
			case jsonOut:
				if err := rr.WriteJSON(out); err != nil {
					return err
				}
			case dryRun:
				fmt.Fprintln(out, renderMoves(rr.Moves, isTerminal(out)))
				fmt.Fprint(out, rr.Summary())
			}

			if runErr != nil {
				fmt.Fprint(cmd.ErrOrStderr(), rr.Failure())
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the planned renames without touching files")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print a JSON report")
	return cmd
}

func renderMoves(moves []classify.Move, pretty bool) string {
	rows := make([][]string, 0, len(moves))
	for _, m := range moves {
		rows = append(rows, []string{m.Source, m.Name, string(m.Format), m.Destination})
	}
	return renderTable([]string{"Source", "Name", "Format", "Destination"}, rows, pretty)
}

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the extension to Galaxy format table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rows := [][]string{}
			for _, ef := range classify.Extensions() {
				rows = append(rows, []string{ef.Ext, string(ef.Format)})
			}
			fmt.Fprintln(out, renderTable([]string{"Extension", "Format"}, rows, isTerminal(out)))
			return nil
		},
	}
}
