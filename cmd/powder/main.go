// powder is a falling-sand physics sandbox.
//
// Usage:
//
//	powder run          - Open the GUI (requires -tags ebiten)
//	powder tui          - Run in the terminal
//	powder serve        - Serve the terminal sandbox over SSH
//	powder bench        - Step a world headless and log statistics
//	powder sweep        - Simulate a grid of parameter variations
//	powder runs         - Show stored sweep results
//	powder materials    - List the material table
//
// Global flags:
//
//	--config <path>      - World config YAML
//	--set key=value      - Override a config key (repeatable)
//	--seed <value>       - World seed
//	--scene <name>       - Starting scene
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"powder/internal/sims/powder"
)

var (
	flagConfig    string
	flagSet       []string
	flagSeed      int64
	flagScene     string
	flagMaterials string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "powder",
	Short: "Falling-sand physics sandbox",
	Long: `powder simulates elements on a grid with gravity, momentum, collisions,
heat exchange, air pressure and material transitions.

Examples:
  powder tui --scene sandbox
  powder bench --steps 600 --set w=320 --set h=240
  powder sweep --vary heat_coef=0.5,1,2 --vary explosion_pressure=0.1,0.25 --db ~/.powder/sweeps.db
  powder materials`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a world config YAML")
	rootCmd.PersistentFlags().StringArrayVar(&flagSet, "set", nil, "config override in key=value form (repeatable)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "world seed (0 keeps the configured seed)")
	rootCmd.PersistentFlags().StringVar(&flagScene, "scene", "", "starting scene: "+strings.Join(powder.Scenes(), ", "))
	rootCmd.PersistentFlags().StringVar(&flagMaterials, "materials", "", "path to a material table YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(materialsCmd)
}

// parseOverrides turns repeated key=value flags into a map. Later keys win.
func parseOverrides(kvs []string) (map[string]string, error) {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("override %q is not key=value", kv)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// loadConfig resolves the world config from the config file, the --set
// overrides and the dedicated flags, in that order.
func loadConfig() (powder.Config, error) {
	cfg, err := powder.LoadConfig(flagConfig)
	if err != nil {
		return cfg, err
	}
	overrides, err := parseOverrides(flagSet)
	if err != nil {
		return cfg, err
	}
	cfg = powder.ApplyMap(cfg, overrides)
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagScene != "" {
		cfg.Scene = strings.ToLower(flagScene)
	}
	if flagMaterials != "" {
		cfg.Materials = flagMaterials
	}
	return cfg, nil
}

func newWorld() (*powder.World, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	world, err := powder.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	world.SetLogger(log.Default().WithPrefix("powder"))
	log.Info("world ready", "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"scene", cfg.Scene, "seed", cfg.Seed, "materials", world.Registry().Len())
	return world, nil
}
