package plan

import (
	"math"
	"testing"

	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/errors"
)

func TestPropulsionKnownValues(t *testing.T) {
	tests := []struct {
		distance int
		parity   float64
		want     int
	}{
		{0, ParityA, 1},
		{3, ParityB, 13},
		{10, ParityA, 41},
		{100, ParityA, 402},
		{100, ParityB, 402},
		{500, ParityB, 2009},
		{525, ParityA, 2110},
	}

	for _, tt := range tests {
		if got := Propulsion(tt.distance, tt.parity); got != tt.want {
			t.Errorf("Propulsion(%d, %v) = %d, want %d", tt.distance, tt.parity, got, tt.want)
		}
	}
}

func TestPropulsionResidual(t *testing.T) {
	// The chosen count is always one of the two counts bracketing the
	// exact distance, so its residual is below one unit.
	for d := 0; d <= coverage.Width; d++ {
		for _, p := range []float64{ParityA, ParityB} {
			dv := float64(d) + 0.5 - p
			got := Propulsion(d, p)
			if res := math.Abs(float64(got)*UnitStep - dv); res >= UnitStep {
				t.Fatalf("Propulsion(%d, %v) = %d, residual %v >= %v", d, p, got, res, UnitStep)
			}
		}
	}
}

func TestCostTable(t *testing.T) {
	s := NewShot(10, 500)
	var (
		xbn = Propulsion(coverage.Width-10, ParityB)
		xbp = Propulsion(10, ParityB)
		xan = Propulsion(coverage.Width-10, ParityA)
		xap = Propulsion(10, ParityA)
		zbn = Propulsion(coverage.Width-500, ParityB)
		zbp = Propulsion(500, ParityB)
		zan = Propulsion(coverage.Width-500, ParityA)
		zap = Propulsion(500, ParityA)
	)
	want := [Orientations]Pair{
		{xbn, zan}, {xap, zbn}, {xan, zbp}, {xbp, zap},
		{xan, zbn}, {xbp, zan}, {xbn, zap}, {xap, zbp},
	}
	if s.Costs != want {
		t.Errorf("Costs = %v, want %v", s.Costs, want)
	}
	if s.Cost(Orientation(3)) != want[3] {
		t.Errorf("Cost(3) = %v, want %v", s.Cost(3), want[3])
	}
}

func TestNewShotBounds(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		panics   bool
	}{
		{"top left", Radius, Radius, false},
		{"bottom right", coverage.Width - Radius - 1, coverage.Width - Radius - 1, false},
		{"row too small", Radius - 1, 100, true},
		{"col too large", 100, coverage.Width - Radius, true},
		{"negative", -5, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if (r != nil) != tt.panics {
					t.Fatalf("panic = %v, want panic %v", r, tt.panics)
				}
				if r != nil {
					if err, ok := r.(error); !ok || !errors.Is(err, errors.ErrCodeInvariant) {
						t.Errorf("panic value %v should be an INVARIANT_VIOLATION error", r)
					}
				}
			}()
			s := NewShot(tt.row, tt.col)
			if fp := s.Footprint(); fp.Dx() != Step || fp.Dy() != Step {
				t.Errorf("Footprint() = %v, want %dx%d", fp, Step, Step)
			}
		})
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		o                      Orientation
		west, north, mirrored  bool
		name                   string
	}{
		{0, false, false, false, "south east"},
		{1, true, false, false, "south west"},
		{2, false, true, false, "north east"},
		{3, true, true, false, "north west"},
		{4, false, false, true, "mirrored south east"},
		{7, true, true, true, "mirrored north west"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.o.West() != tt.west || tt.o.North() != tt.north || tt.o.Mirrored() != tt.mirrored {
				t.Errorf("flags(%d) = %v %v %v", tt.o, tt.o.West(), tt.o.North(), tt.o.Mirrored())
			}
			if got := tt.o.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}
