package order

import (
	"slices"

	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/plan"
)

// Step is one shot of a Sequence with its chosen cost and activation.
type Step struct {
	Shot   plan.Shot
	Cost   plan.Pair
	Vector Vector
}

// Sequence is the firing order of a plan.
type Sequence struct {
	Orientation plan.Orientation
	Steps       []Step

	// Counts[i] is the number of steps with slot i active.
	Counts []int

	// Priority lists slot indices by descending Counts; equal counts keep
	// ascending index order.
	Priority []int
}

// Order decomposes the chosen-orientation cost of every shot in res and
// sorts the shots so that like activation patterns are adjacent.
//
// Two shots compare by the first slot in priority order where their vectors
// differ; the shot with that slot active sorts after. Shots with identical
// vectors keep their relative order.
func Order(res *plan.Result) (*Sequence, error) {
	seq := &Sequence{
		Orientation: res.Orientation,
		Steps:       make([]Step, len(res.Shots)),
		Counts:      make([]int, Slots()),
	}
	for i, s := range res.Shots {
		cost := s.Cost(res.Orientation)
		v, err := Decompose(cost)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "shot %s", s)
		}
		for slot, on := range v {
			if on {
				seq.Counts[slot]++
			}
		}
		seq.Steps[i] = Step{Shot: s, Cost: cost, Vector: v}
	}

	seq.Priority = SlotPriority(seq.Counts)
	slices.SortStableFunc(seq.Steps, func(a, b Step) int {
		return compare(a.Vector, b.Vector, seq.Priority)
	})
	return seq, nil
}

// SlotPriority returns slot indices sorted by descending count. Ties keep
// ascending index order.
func SlotPriority(counts []int) []int {
	prio := make([]int, len(counts))
	for i := range prio {
		prio[i] = i
	}
	slices.SortStableFunc(prio, func(a, b int) int {
		return counts[b] - counts[a]
	})
	return prio
}

func compare(a, b Vector, prio []int) int {
	for _, slot := range prio {
		if a[slot] != b[slot] {
			if a[slot] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Vectors returns the activation vector of every step in firing order.
func (s *Sequence) Vectors() []Vector {
	out := make([]Vector, len(s.Steps))
	for i, st := range s.Steps {
		out[i] = st.Vector
	}
	return out
}

// Shots returns the shots in firing order.
func (s *Sequence) Shots() []plan.Shot {
	out := make([]plan.Shot, len(s.Steps))
	for i, st := range s.Steps {
		out[i] = st.Shot
	}
	return out
}
