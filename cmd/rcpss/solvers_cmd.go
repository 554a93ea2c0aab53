package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newSolversCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solvers",
		Short: "List the registered scheduling engines",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := a.registry.Names()
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
