package plan

import (
	"math"

	"github.com/matzehuels/cannon/pkg/coverage"
)

// Result is a scored candidate.
type Result struct {
	Candidate Candidate
	Shots     []Shot
	Struck    *Grid

	ShotCount int // number of shots fired
	Damaged   int // distinct cells struck
	Miss      int // struck cells outside the required region
	Total     int // required cells on the map

	Accuracy   float64 // percentage of required cells struck
	Efficiency float64 // percentage of footprint area that struck a fresh cell
	Error      float64 // distance of (Accuracy, Efficiency) from (100, 100)

	Orientation Orientation
	Propulsion  int64               // total cost of all shots at Orientation
	Totals      [Orientations]int64 // total cost per orientation
}

// Score renders shots against m and computes every metric of a Result.
//
// A nonzero Miss means a footprint left the silhouette. That never happens
// for shots produced by a Tiler; Score still counts it so the defect shows up
// in the report instead of being hidden.
func Score(m *coverage.Map, c Candidate, shots []Shot) *Result {
	res := &Result{
		Candidate: c,
		Shots:     shots,
		Struck:    NewGrid(),
		ShotCount: len(shots),
		Total:     m.Total(),
	}

	for _, s := range shots {
		res.Damaged += res.Struck.Mark(s)
		for o, p := range s.Costs {
			res.Totals[o] += int64(p.Sum())
		}
	}

	for r := 0; r < coverage.Width; r++ {
		for col := 0; col < coverage.Width; col++ {
			if res.Struck.Struck(r, col) && !m.Required(r, col) {
				res.Miss++
			}
		}
	}

	res.Accuracy = 100
	if res.Total > 0 {
		res.Accuracy = float64(res.Damaged-res.Miss) / float64(res.Total) * 100
	}
	res.Efficiency = 100
	if res.ShotCount > 0 {
		res.Efficiency = float64(res.Damaged) / float64(res.ShotCount*Step*Step) * 100
	}
	res.Error = errorOf(res.Accuracy, res.Efficiency)

	res.Orientation, res.Propulsion = cheapest(res.Totals)
	return res
}

// errorOf is the euclidean distance of (acc, eff) from a perfect score.
func errorOf(acc, eff float64) float64 {
	da, de := 100-acc, 100-eff
	return math.Sqrt(da*da + de*de)
}

// cheapest returns the orientation with the lowest total. Ties go to the
// lower index.
func cheapest(totals [Orientations]int64) (Orientation, int64) {
	best := 0
	for o := 1; o < Orientations; o++ {
		if totals[o] < totals[best] {
			best = o
		}
	}
	return Orientation(best), totals[best]
}

// Cost returns the chosen-orientation launch cost of shot i.
func (r *Result) Cost(i int) Pair {
	return r.Shots[i].Cost(r.Orientation)
}

// Summary returns the metrics of r without its shots and grid.
func (r *Result) Summary() Summary {
	return Summary{
		Candidate:   r.Candidate,
		ShotCount:   r.ShotCount,
		Damaged:     r.Damaged,
		Miss:        r.Miss,
		Accuracy:    r.Accuracy,
		Efficiency:  r.Efficiency,
		Error:       r.Error,
		Orientation: r.Orientation,
		Propulsion:  r.Propulsion,
	}
}

// Summary is the metric tuple of a scored candidate.
type Summary struct {
	Candidate   Candidate   `json:"candidate"`
	ShotCount   int         `json:"shots"`
	Damaged     int         `json:"damaged"`
	Miss        int         `json:"miss"`
	Accuracy    float64     `json:"accuracy"`
	Efficiency  float64     `json:"efficiency"`
	Error       float64     `json:"error"`
	Orientation Orientation `json:"orientation"`
	Propulsion  int64       `json:"propulsion"`
}
