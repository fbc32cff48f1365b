package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"powder/internal/core"
)

var (
	flagBenchSteps    int
	flagBenchEvery    int
	flagBenchRealtime bool
	flagBenchTPS      int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Step a world headless and log statistics",
	Long: `Step a world without a display and log statistics at a fixed interval.

With --realtime the world is paced at --tps ticks per second instead of
running as fast as possible.

Examples:
  powder bench --steps 1200
  powder bench --scene sandbox --set w=400 --set h=300 --every 100
  powder bench --realtime --tps 60 --steps 300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		world, err := newWorld()
		if err != nil {
			return err
		}
		logger := log.Default().WithPrefix("bench")
		var pacer *core.FixedStep
		if flagBenchRealtime {
			pacer = core.NewFixedStep(flagBenchTPS)
		}

		start := time.Now()
		var transitions, destroyed int
		for step := 0; step < flagBenchSteps; {
			if pacer != nil && !pacer.ShouldStep() {
				time.Sleep(pacer.Interval() / 4)
				continue
			}
			world.Step()
			step++
			st := world.Stats()
			transitions += st.Transitions
			destroyed += st.Destroyed
			if flagBenchEvery > 0 && step%flagBenchEvery == 0 {
				logger.Info("tick",
					"tick", st.Tick,
					"elements", st.Elements,
					"mass", st.TotalMass,
					"mean_temp", st.MeanTemperature,
					"peak_pressure", st.PeakPressure,
				)
			}
		}
		elapsed := time.Since(start)
		st := world.Stats()
		perStep := time.Duration(0)
		if flagBenchSteps > 0 {
			perStep = elapsed / time.Duration(flagBenchSteps)
		}
		logger.Info("done",
			"steps", flagBenchSteps,
			"elapsed", elapsed.Round(time.Millisecond),
			"per_step", perStep,
			"elements", st.Elements,
			"transitions", transitions,
			"destroyed", destroyed,
		)
		if drift := st.TotalMass - st.FieldMass; drift > 1e-6 || drift < -1e-6 {
			logger.Warn("gravity field mass drifted from element mass", "elements", st.TotalMass, "field", st.FieldMass)
		}
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchSteps, "steps", 600, "ticks to simulate")
	benchCmd.Flags().IntVar(&flagBenchEvery, "every", 60, "log statistics every N ticks, 0 disables")
	benchCmd.Flags().BoolVar(&flagBenchRealtime, "realtime", false, "pace ticks at --tps")
	benchCmd.Flags().IntVar(&flagBenchTPS, "tps", 60, "ticks per second with --realtime")
}
