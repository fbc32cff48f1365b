package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"powder/internal/storage"
	"powder/internal/sweep"
)

var (
	flagSweepVary    []string
	flagSweepSteps   int
	flagSweepWorkers int
	flagSweepDB      string
	flagSweepID      string
	flagSweepTop     int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate a grid of parameter variations",
	Long: `Simulate every combination of the --vary axes on top of the resolved
config, one world per combination, across a worker pool. Results are printed
by peak air pressure and, with --db, stored in SQLite.

Examples:
  powder sweep --vary heat_coef=0.5,1,2
  powder sweep --scene sandbox --vary g=0,0.005,0.02 --vary diffusion=0.1,0.3 --steps 300
  powder sweep --vary explosion_pressure=0.1,0.25,0.5 --db ~/.powder/sweeps.db --id explosions`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringArrayVar(&flagSweepVary, "vary", nil, "swept key in key=v1,v2 form (repeatable)")
	sweepCmd.Flags().IntVar(&flagSweepSteps, "steps", 240, "ticks to simulate per scenario")
	sweepCmd.Flags().IntVar(&flagSweepWorkers, "workers", runtime.NumCPU(), "number of worker goroutines")
	sweepCmd.Flags().StringVar(&flagSweepDB, "db", "", "SQLite file to store results in")
	sweepCmd.Flags().StringVar(&flagSweepID, "id", "", "sweep id stored with the results (default: timestamp)")
	sweepCmd.Flags().IntVar(&flagSweepTop, "top", 5, "results to print")
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig()
	if err != nil {
		return err
	}
	plan := sweep.Plan{
		Base:    base,
		Steps:   flagSweepSteps,
		Workers: flagSweepWorkers,
		Logger:  log.Default().WithPrefix("sweep"),
	}
	for _, v := range flagSweepVary {
		axis, err := sweep.ParseAxis(v)
		if err != nil {
			return err
		}
		plan.Axes = append(plan.Axes, axis)
	}

	var store *storage.Store
	if flagSweepDB != "" {
		store, err = storage.Open(flagSweepDB)
		if err != nil {
			return err
		}
		defer store.Close()
	}
	id := flagSweepID
	if id == "" {
		id = time.Now().Format("20060102-150405")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	total := len(plan.Expand())
	log.Info("sweeping", "scenarios", total, "workers", plan.Workers, "steps", plan.Steps, "id", id)
	start := time.Now()
	results, err := sweep.Run(ctx, plan)
	if err != nil && ctx.Err() == nil {
		return err
	}
	if ctx.Err() != nil {
		log.Warn("sweep interrupted", "completed", len(results), "of", total)
	}

	for _, res := range results {
		if res.Err != nil || store == nil {
			continue
		}
		if _, err := store.SaveRun(recordOf(id, plan.Steps, res)); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nTop %d of %d (elapsed %s):\n", min(flagSweepTop, len(results)), len(results), time.Since(start).Round(time.Millisecond))
	for i, res := range sweep.ByPeakPressure(results) {
		if i >= flagSweepTop {
			break
		}
		if res.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d) %s failed: %v\n", i+1, res.Params(), res.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%2d) peak=%.3f elements=%d mean=%.1fK transitions=%d destroyed=%d %s\n",
			i+1, res.PeakPressure, res.Final.Elements, res.Final.MeanTemperature, res.Transitions, res.Destroyed, res.Params())
	}
	if store != nil {
		log.Info("results stored", "db", flagSweepDB, "id", id)
	}
	return nil
}

func recordOf(id string, steps int, res sweep.Result) storage.RunRecord {
	return storage.RunRecord{
		SweepID:         id,
		Scene:           res.Config.Scene,
		Seed:            res.Config.Seed,
		Steps:           steps,
		Params:          res.Params(),
		Elements:        res.Final.Elements,
		TotalMass:       res.Final.TotalMass,
		MeanTemperature: res.Final.MeanTemperature,
		PeakPressure:    res.PeakPressure,
		Transitions:     res.Transitions,
		Destroyed:       res.Destroyed,
		Elapsed:         res.Elapsed,
	}
}
