//go:build !ebiten

package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the sandbox window (requires -tags ebiten)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("the GUI requires building with -tags ebiten; try 'powder tui'")
	},
}
