package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"powder/internal/sims/powder"
)

func TestFitGrid(t *testing.T) {
	cases := []struct {
		cols, rows int
		w, h       int
	}{
		{80, 24, 80, 44},
		{120, 40, 120, 76},
		{4, 3, 8, 8},
	}
	for _, tc := range cases {
		w, h := FitGrid(tc.cols, tc.rows)
		if w != tc.w || h != tc.h {
			t.Errorf("FitGrid(%d, %d) = %dx%d, want %dx%d", tc.cols, tc.rows, w, h, tc.w, tc.h)
		}
	}
}

func TestNewSSHServerCreatesHostKeyDir(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	factory := func(w, h int) (*powder.World, error) {
		c := powder.DefaultConfig()
		c.Width, c.Height = w, h
		return powder.NewWithConfig(c)
	}
	srv, err := NewSSHServer(cfg, factory, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.server == nil {
		t.Fatalf("server not built")
	}
	if _, err := os.Stat(filepath.Join(dir, "keys")); err != nil {
		t.Fatalf("host key directory: %v", err)
	}
}
