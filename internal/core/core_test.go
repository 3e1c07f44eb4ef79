package core

import (
	"testing"
	"time"
)

func TestByteGridBounds(t *testing.T) {
	g := NewByteGrid(3, 4)
	if len(g.Cells()) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(g.Cells()))
	}
	if !g.Set(2, 3, 7) {
		t.Fatal("expected (2,3) to be in bounds")
	}
	if g.Set(3, 0, 1) || g.Set(0, -1, 1) {
		t.Fatal("out-of-bounds writes must be rejected")
	}
	if got := g.At(2, 3); got != 7 {
		t.Fatalf("At(2,3) = %d, want 7", got)
	}
	if got := g.Cells()[g.Index(2, 3)]; got != 7 {
		t.Fatalf("row-major index mismatch, got %d", got)
	}
	if got := g.At(-1, 0); got != 0 {
		t.Fatalf("out-of-bounds read = %d, want 0", got)
	}

	clone := g.Clone()
	g.Fill(1)
	if clone.At(0, 0) != 0 || clone.At(2, 3) != 7 {
		t.Fatal("Clone must not share storage")
	}
}

func TestNewByteGridNegative(t *testing.T) {
	g := NewByteGrid(-1, 5)
	if g.Rows != 0 || len(g.Cells()) != 0 {
		t.Fatalf("expected empty grid, got %dx%d", g.Rows, g.Cols)
	}
}

func TestFixedStepPacing(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := newFixedStep(10, func() time.Time { return clock })

	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	if fs.ShouldStep() {
		t.Fatal("no time elapsed, should not step")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("half a tick elapsed, should not step")
	}
	clock = clock.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("a full tick elapsed, should step")
	}
	if fs.Step() != 100*time.Millisecond {
		t.Fatalf("step = %v, want 100ms", fs.Step())
	}
}

func TestParameterLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{IntParam("rows", "Rows", 6)}},
		{Name: "B", Params: []Parameter{FloatParam("speed", "Speed", 0.015), StringParam("difficulty", "Difficulty", "easy")}},
	}}
	p, ok := snap.Lookup("speed")
	if !ok || p.Value != "0.015" || p.Type != ParamTypeFloat {
		t.Fatalf("unexpected lookup result %+v (ok=%v)", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("missing key should not be found")
	}
}
