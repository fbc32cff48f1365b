package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"powder/internal/sims/powder"
	"powder/internal/tui"
)

var (
	flagServeAddr    string
	flagServeHostKey string
	flagServeIdle    time.Duration
	flagServeRate    int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the terminal sandbox over SSH",
	Long: `Serve the terminal sandbox over SSH. Every session gets its own world,
sized to the client's terminal.

  powder serve --ssh :23235
  ssh -p 23235 localhost`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := loadConfig()
		if err != nil {
			return err
		}
		logger := log.Default().WithPrefix("ssh")
		factory := func(w, h int) (*powder.World, error) {
			cfg := base
			cfg.Width, cfg.Height = w, h
			world, err := powder.NewWithConfig(cfg)
			if err != nil {
				return nil, err
			}
			world.SetLogger(logger.WithPrefix("powder"))
			return world, nil
		}

		cfg := tui.DefaultSSHConfig()
		cfg.Address = flagServeAddr
		cfg.HostKeyPath = flagServeHostKey
		cfg.IdleTimeout = flagServeIdle
		cfg.TickRate = flagServeRate
		srv, err := tui.NewSSHServer(cfg, factory, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	def := tui.DefaultSSHConfig()
	serveCmd.Flags().StringVar(&flagServeAddr, "ssh", def.Address, "listen address")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "", "host key path (default ~/.powder/host_key)")
	serveCmd.Flags().DurationVar(&flagServeIdle, "idle-timeout", def.IdleTimeout, "disconnect idle sessions after this long")
	serveCmd.Flags().IntVar(&flagServeRate, "tps", def.TickRate, "ticks per second per session")
}
