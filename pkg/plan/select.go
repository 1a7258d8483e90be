package plan

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cannon/pkg/coverage"
)

// Candidate identifies one tiling variant.
type Candidate struct {
	Phase     int       `json:"phase"`     // row alignment, 0..Step-1
	Direction Direction `json:"direction"` // column scan order
	Depth     int       `json:"depth"`     // first anti-alias factor, 0..Radius
}

func (c Candidate) String() string {
	return fmt.Sprintf("phase %d %s aa%d", c.Phase, c.Direction, c.Depth)
}

// Valid reports whether every field of c is in range.
func (c Candidate) Valid() bool {
	return c.Phase >= 0 && c.Phase < Step &&
		(c.Direction == East || c.Direction == West) &&
		c.Depth >= 0 && c.Depth <= Radius
}

// Candidates returns every candidate in enumeration order: phase, then
// direction, then depth.
func Candidates() []Candidate {
	out := make([]Candidate, 0, Step*len(Directions)*(Radius+1))
	for phase := 0; phase < Step; phase++ {
		for _, d := range Directions {
			for depth := 0; depth <= Radius; depth++ {
				out = append(out, Candidate{Phase: phase, Direction: d, Depth: depth})
			}
		}
	}
	return out
}

// Evaluate tiles, refines and scores one candidate.
func Evaluate(m *coverage.Map, c Candidate) *Result {
	t := NewTiler(m)
	base := t.Lines(c.Phase, c.Direction)
	shots := t.Refine(base, gridOf(base), c.Depth, c.Direction)
	return Score(m, c, shots)
}

// Better returns the preferable of a and b: higher accuracy, then fewer
// misses, lower error, higher efficiency, fewer shots and lower propulsion.
// A full tie returns a. A nil operand loses.
func Better(a, b *Result) *Result {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.Accuracy != b.Accuracy:
		return pick(a.Accuracy > b.Accuracy, a, b)
	case a.Miss != b.Miss:
		return pick(a.Miss < b.Miss, a, b)
	case a.Error != b.Error:
		return pick(a.Error < b.Error, a, b)
	case a.Efficiency != b.Efficiency:
		return pick(a.Efficiency > b.Efficiency, a, b)
	case a.ShotCount != b.ShotCount:
		return pick(a.ShotCount < b.ShotCount, a, b)
	case a.Propulsion != b.Propulsion:
		return pick(a.Propulsion < b.Propulsion, a, b)
	}
	return a
}

func pick(first bool, a, b *Result) *Result {
	if first {
		return a
	}
	return b
}

// SelectOptions configures Select.
type SelectOptions struct {
	// Workers bounds concurrent evaluations. Zero uses GOMAXPROCS.
	Workers int

	// Candidates overrides the enumeration. Nil evaluates Candidates().
	Candidates []Candidate

	// OnScored, if set, is called once per candidate with its summary.
	// Calls may come from several goroutines.
	OnScored func(Summary)
}

// Selection is the outcome of Select.
type Selection struct {
	Best   *Result
	Scored []Summary // one per candidate, in enumeration order
}

// Select evaluates every candidate and returns the best one. Evaluations run
// concurrently; the reduction walks results in enumeration order, so equal
// inputs always produce the same winner.
func Select(ctx context.Context, m *coverage.Map, opts SelectOptions) (*Selection, error) {
	cands := opts.Candidates
	if cands == nil {
		cands = Candidates()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(cands))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cands {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := Evaluate(m, c)
			results[i] = res
			if opts.OnScored != nil {
				opts.OnScored(res.Summary())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sel := &Selection{Scored: make([]Summary, len(results))}
	for i, res := range results {
		sel.Scored[i] = res.Summary()
		sel.Best = Better(sel.Best, res)
	}
	return sel, nil
}
