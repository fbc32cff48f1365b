package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"powder/internal/sims/powder"

	"powder/internal/tui"
)

var (
	flagTUIRate int
	flagTUIFit  bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the sandbox in the terminal",
	Long: `Run the sandbox in the terminal. Each character shows two cells.

Controls:
  Arrows/hjkl    - Move the cursor
  Mouse          - Left drag paints, right click selects, wheel resizes
  x/Enter        - Apply the current tool at the cursor
  d              - Erase at the cursor
  Tab/Shift+Tab  - Cycle material
  t              - Cycle tool (paint, erase, heat, cool)
  b, [, ]        - Brush shape and size
  s              - Select the element under the cursor
  g              - Toggle neutral gravity
  Space, n       - Pause, single step
  r              - Reset
  q/Ctrl+C       - Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		world, err := tuiWorld()
		if err != nil {
			return err
		}
		// the alternate screen owns stdout while the viewer runs
		quiet := log.New(cmd.ErrOrStderr())
		quiet.SetLevel(log.ErrorLevel)
		world.SetLogger(quiet.WithPrefix("powder"))
		return tui.Run(world, tui.Options{
			TickRate: flagTUIRate,
			Seed:     world.Config().Seed,
			Logger:   quiet.WithPrefix("tui"),
		})
	},
}

func init() {
	tuiCmd.Flags().IntVar(&flagTUIRate, "tps", 30, "ticks per second")
	tuiCmd.Flags().BoolVar(&flagTUIFit, "fit", false, "size the world to the terminal")
}

func tuiWorld() (*powder.World, error) {
	if !flagTUIFit {
		return newWorld()
	}
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		log.Warn("cannot read terminal size, using configured size", "err", err)
		return newWorld()
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Width, cfg.Height = tui.FitGrid(cols, rows)
	return powder.NewWithConfig(cfg)
}
