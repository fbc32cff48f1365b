package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"powder/internal/storage"
)

var (
	flagRunsDB    string
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs [sweep-id]",
	Short: "Show stored sweep results",
	Long: `Without an argument, list the sweep ids stored in the database, most
recent first. With a sweep id, show its runs by peak pressure.

Examples:
  powder runs --db ~/.powder/sweeps.db
  powder runs explosions --db ~/.powder/sweeps.db --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(flagRunsDB)
		if err != nil {
			return err
		}
		defer store.Close()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			ids, err := store.Sweeps()
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintln(out, "No sweeps recorded yet.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(out, id)
			}
			return nil
		}

		runs, err := store.Runs(args[0], flagRunsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintf(out, "No runs for sweep %q.\n", args[0])
			return nil
		}
		fmt.Fprintf(out, "  %-4s  %-10s  %-8s  %-10s  %-8s  %s\n", "Rank", "Peak", "Elements", "Mean T", "Elapsed", "Params")
		for i, r := range runs {
			fmt.Fprintf(out, "  %-4d  %-10.3f  %-8d  %-10.1f  %-8s  %s\n",
				i+1, r.PeakPressure, r.Elements, r.MeanTemperature, r.Elapsed, r.Params)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsDB, "db", "~/.powder/sweeps.db", "SQLite file with sweep results")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "runs to show")
}
