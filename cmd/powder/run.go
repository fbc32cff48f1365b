//go:build ebiten

package main

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"powder/internal/app"
)

var appCfg = app.NewConfig()

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the sandbox window",
	Long: `Open the sandbox window.

Controls:
  Left mouse     - Apply the current tool
  Right mouse    - Select the element under the cursor for editing
  Wheel          - Resize the brush
  Tab/Shift+Tab  - Cycle material
  T              - Cycle tool (paint, erase, heat, cool)
  B              - Toggle circle/square brush
  G              - Toggle neutral gravity
  M              - Toggle color/material view
  1/2/3          - Pressure, temperature and gravity overlays
  Space/Enter/N  - Pause, resume, single step
  R/S            - Reset, reset with a new seed
  Q/Esc          - Quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		world, err := newWorld()
		if err != nil {
			return err
		}
		game := app.New(world, appCfg, log.Default().WithPrefix("app"))
		size := world.Size()

		ebiten.SetWindowTitle("powder - " + world.Config().Scene)
		ebiten.SetTPS(appCfg.TPS)
		ebiten.SetWindowSize(size.W*appCfg.Scale+max(appCfg.HUDWidth, 0), size.H*appCfg.Scale)

		if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
			return err
		}
		return nil
	},
}

func init() {
	appCfg.Bind(runCmd.Flags())
}
