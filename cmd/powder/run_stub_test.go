//go:build !ebiten

package main

import (
	"strings"
	"testing"
)

func TestRunWithoutGUIPointsAtTUI(t *testing.T) {
	err := runCmd.RunE(runCmd, nil)
	if err == nil {
		t.Fatal("run should fail without the ebiten tag")
	}
	if !strings.Contains(err.Error(), "-tags ebiten") || !strings.Contains(err.Error(), "powder tui") {
		t.Fatalf("unhelpful error: %v", err)
	}
}
