package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const tolerance = 1e-9

func TestUnitRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		v    cp.Vector
	}{
		{"origin", cp.Vector{}},
		{"pixels", cp.Vector{X: 640, Y: 360}},
		{"negative", cp.Vector{X: -12.5, Y: -0.25}},
		{"fractional", cp.Vector{X: 0.001, Y: 123456.789}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ToDisplay(ToSim(c.v))
			if !near(got, c.v) {
				t.Fatalf("display->sim->display: expected %v, got %v", c.v, got)
			}
			got = ToSim(ToDisplay(c.v))
			if !near(got, c.v) {
				t.Fatalf("sim->display->sim: expected %v, got %v", c.v, got)
			}
		})
	}
}

func TestUnitDirection(t *testing.T) {
	sim := ToSim(cp.Vector{X: 200, Y: -100})
	if !near(sim, cp.Vector{X: 2, Y: -1}) {
		t.Fatalf("expected (2,-1) simulation units, got %v", sim)
	}
	if got := ToDisplayScalar(ToSimScalar(37)); math.Abs(got-37) > tolerance {
		t.Fatalf("scalar round trip: expected 37, got %v", got)
	}
}

func near(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) <= tolerance*math.Max(1, math.Abs(b.X)) &&
		math.Abs(a.Y-b.Y) <= tolerance*math.Max(1, math.Abs(b.Y))
}
