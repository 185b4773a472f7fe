package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run [flags] [--] <program> [args...]",
		Short: "Run a command line, showing stderr only on failure",
		Long: `Join the arguments with spaces and run them through the shell.
Standard output streams through; standard error is captured and written
as "Error:\n<stderr>" only when the command exits non-zero.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			eng, err := ctx.engine(cmd)
			if err != nil {
				return err
			}
			rr, err := eng.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			if jsonOut {
				if err := rr.WriteJSON(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			if rr.Failed() {
				fmt.Fprint(cmd.ErrOrStderr(), rr.Failure())
				return &exitError{code: 1}
			}
			return nil
		},
	}
	// Everything after the program name belongs to the program.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print a JSON report after the command finishes")
	return cmd
}
