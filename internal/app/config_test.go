package app

import (
	"testing"

	"github.com/spf13/pflag"

	"powder/internal/core"
)

func TestBindOverridesDefaults(t *testing.T) {
	cfg := NewConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"--scale", "2", "--hud", "0", "--strength", "0.5"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scale != 2 || cfg.HUDWidth != 0 || cfg.Strength != 0.5 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.TPS != 60 {
		t.Fatalf("untouched TPS = %d", cfg.TPS)
	}
}

func TestCellAt(t *testing.T) {
	size := core.Size{W: 10, H: 5}
	cases := []struct {
		mx, my int
		x, y   int
		ok     bool
	}{
		{0, 0, 0, 0, true},
		{39, 19, 9, 4, true},
		{40, 0, 0, 0, false},
		{-1, 3, 0, 0, false},
		{5, 20, 0, 0, false},
	}
	for _, tc := range cases {
		x, y, ok := cellAt(tc.mx, tc.my, 4, size)
		if ok != tc.ok || (ok && (x != tc.x || y != tc.y)) {
			t.Errorf("cellAt(%d,%d) = %d,%d,%v want %d,%d,%v", tc.mx, tc.my, x, y, ok, tc.x, tc.y, tc.ok)
		}
	}
}
