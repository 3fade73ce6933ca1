package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"relkat.dev/core/internal/catdebug"
	"relkat.dev/core/internal/diag"
	"relkat.dev/core/internal/session"
)

// wrapWidth is the column at which diagnostic text printed to stderr is
// wrapped, the way cmd/cue wraps CUE error messages for a terminal.
const wrapWidth = 80

// Main builds and runs the root command, returning the process exit code:
// 0 on clean completion (every goal provable), nonzero otherwise.
func Main() (code int) {
	var bug error
	defer func() {
		if bug != nil {
			fmt.Fprintln(os.Stderr, wordwrap.WrapString(bug.Error(), wrapWidth))
			code = 2
		}
	}()
	defer diag.Recover(&bug)

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if err != errUnprovable {
			fmt.Fprintln(os.Stderr, wordwrap.WrapString(err.Error(), wrapWidth))
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var saturation int

	cmd := &cobra.Command{
		Use:           "relkat [path] [infinite]",
		Short:         "decide relation-algebra inclusion goals by cyclic tableau proof search",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catdebug.Init(); err != nil {
				return err
			}
			if len(args) == 0 {
				return runREPL(cmd, saturation)
			}
			local := false
			if len(args) == 2 {
				if args[1] != "infinite" {
					return diag.Errorf("unknown second argument %q, expected %q", args[1], "infinite")
				}
				local = true
			}
			return runFile(cmd, args[0], saturation, local)
		},
	}
	cmd.Flags().IntVar(&saturation, "saturation", session.DefaultSaturationBound,
		"saturation rewrite bound applied before each tableau rule step")
	return cmd
}
