package plan

import (
	"image"
	"math"
	"testing"

	"github.com/matzehuels/cannon/pkg/coverage"
)

func TestScoreSingleBlock(t *testing.T) {
	m := coverage.FromRects(image.Rect(40, 60, 47, 67))
	res := Score(m, Candidate{}, []Shot{NewShot(63, 43)})

	if res.Damaged != 49 || res.Miss != 0 || res.Total != 49 || res.ShotCount != 1 {
		t.Errorf("counts = damaged %d miss %d total %d shots %d", res.Damaged, res.Miss, res.Total, res.ShotCount)
	}
	if res.Accuracy != 100 || res.Efficiency != 100 || res.Error != 0 {
		t.Errorf("metrics = acc %v eff %v err %v", res.Accuracy, res.Efficiency, res.Error)
	}
}

func TestScoreCountsMisses(t *testing.T) {
	// A 7x6 block; the shot overhangs one column of background.
	m := coverage.FromRects(image.Rect(7, 7, 13, 14))
	res := Score(m, Candidate{}, []Shot{NewShot(10, 10)})

	if res.Damaged != 49 {
		t.Errorf("Damaged = %d, want 49", res.Damaged)
	}
	if res.Miss != 7 {
		t.Errorf("Miss = %d, want 7", res.Miss)
	}
	if want := float64(49-7) / 42 * 100; res.Accuracy != want {
		t.Errorf("Accuracy = %v, want %v", res.Accuracy, want)
	}
}

func TestScoreOverlap(t *testing.T) {
	m := coverage.FromRects(image.Rect(0, 0, 10, Step))
	res := Score(m, Candidate{}, []Shot{NewShot(3, 3), NewShot(3, 6)})

	if res.Damaged != 70 {
		t.Errorf("Damaged = %d, want 70", res.Damaged)
	}
	if want := 70.0 / 98 * 100; res.Efficiency != want {
		t.Errorf("Efficiency = %v, want %v", res.Efficiency, want)
	}
}

func TestScoreEmpty(t *testing.T) {
	res := Score(coverage.Blank(), Candidate{}, nil)
	if res.ShotCount != 0 || res.Damaged != 0 || res.Miss != 0 {
		t.Errorf("empty score has counts %+v", res.Summary())
	}
	if res.Accuracy != 100 || res.Efficiency != 100 || res.Error != 0 {
		t.Errorf("empty score metrics = %v %v %v", res.Accuracy, res.Efficiency, res.Error)
	}
	if res.Propulsion != 0 {
		t.Errorf("Propulsion = %d, want 0", res.Propulsion)
	}
}

func TestScoreOrientation(t *testing.T) {
	// Shots hugging the north-west corner are cheapest to reach from there.
	m := coverage.FromRects(image.Rect(0, 0, 30, 30))
	shots := NewTiler(m).Lines(0, East)
	res := Score(m, Candidate{}, shots)

	for o := 0; o < Orientations; o++ {
		if res.Totals[o] < res.Propulsion {
			t.Errorf("orientation %d total %d beats chosen %d", o, res.Totals[o], res.Propulsion)
		}
	}
	if res.Totals[res.Orientation] != res.Propulsion {
		t.Errorf("Propulsion %d != Totals[%d] %d", res.Propulsion, res.Orientation, res.Totals[res.Orientation])
	}
	if !res.Orientation.North() {
		t.Errorf("Orientation = %s, want a north placement", res.Orientation)
	}

	var sum int64
	for i := range res.Shots {
		sum += int64(res.Cost(i).Sum())
	}
	if sum != res.Propulsion {
		t.Errorf("sum of chosen costs = %d, want %d", sum, res.Propulsion)
	}
}

func TestCheapestTieGoesToLowerIndex(t *testing.T) {
	o, v := cheapest([Orientations]int64{5, 3, 3, 9, 3, 4, 4, 4})
	if o != 1 || v != 3 {
		t.Errorf("cheapest() = %d, %d, want 1, 3", o, v)
	}
}

func TestErrorFormula(t *testing.T) {
	m := disc(264, 264, 100)
	for _, c := range Candidates()[:8] {
		res := Evaluate(m, c)
		want := math.Sqrt((100-res.Accuracy)*(100-res.Accuracy) + (100-res.Efficiency)*(100-res.Efficiency))
		if res.Error != want {
			t.Errorf("%s: Error = %v, want %v", c, res.Error, want)
		}
	}
}
