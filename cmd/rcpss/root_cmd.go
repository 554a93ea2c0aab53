package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd creates the top-level "rcpss" command and registers every
// subcommand against app.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rcpss",
		Short: "Resource-constrained project scheduling solver",
		Long:  "rcpss assigns tasks to employees and schedules them, minimizing makespan and priority inversions.",
	}

	root.AddCommand(
		newSolveCmd(a),
		newSolversCmd(a),
		newHistoryCmd(a),
	)
	return root
}
