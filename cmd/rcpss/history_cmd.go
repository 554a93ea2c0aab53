package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past solver runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.historyRepo.List(context.Background(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %-20s  %-4s  makespan=%dmin  priorityCost=%d  optimal=%v  started=%s\n",
					run.ID, run.ProjectName, run.SolverName, run.FinalMakespanMinute, run.FinalPriorityCost,
					run.FinalOptimal, run.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}
