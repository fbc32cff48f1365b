package core

import (
	"testing"
	"time"
)

func TestFixedStepAccumulates(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }
	fs.backlog = 0

	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	now = now.Add(60 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("60ms is below the 100ms step")
	}
	now = now.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("120ms accumulated, should step")
	}
	if fs.ShouldStep() {
		t.Fatal("remaining 20ms should not step")
	}
	if fs.DT() != 0.1 || fs.Interval() != 100*time.Millisecond {
		t.Fatalf("DT = %f", fs.DT())
	}
	fs.SetTPS(0)
	if fs.Interval() != time.Second/60 {
		t.Fatal("non-positive TPS should fall back to 60")
	}
}

func TestFixedStepCapsBacklog(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }
	fs.backlog = 0
	fs.ShouldStep()

	now = now.Add(5 * time.Second)
	steps := 0
	for fs.ShouldStep() {
		steps++
	}
	if steps != maxBacklog {
		t.Fatalf("stall produced %d steps, want %d", steps, maxBacklog)
	}
}
