package order

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/plan"
)

// Denominations are the charge sizes of one axis, largest first. The greedy
// split over this table leaves no remainder for any value up to Capacity.
var Denominations = [...]int{1056, 528, 264, 132, 66, 30, 16, 8, 4, 4, 2, 1}

// Axis names the two halves of a Vector.
var Axis = [2]string{"X", "Z"}

// Capacity is the largest cost one axis can represent.
func Capacity() int {
	sum := 0
	for _, d := range Denominations {
		sum += d
	}
	return sum
}

// Slots is the length of a Vector: one slot per denomination per axis.
func Slots() int { return 2 * len(Denominations) }

// SlotName labels slot i, e.g. "X 1056" or "Z 4".
func SlotName(i int) string {
	n := len(Denominations)
	return fmt.Sprintf("%s %d", Axis[i/n], Denominations[i%n])
}

// Vector is the activation pattern of one shot. Slots [0, n) split the X
// cost and slots [n, 2n) the Z cost, n = len(Denominations).
type Vector []bool

// Decompose splits p into a Vector. Costs outside [0, Capacity()] cannot be
// represented.
func Decompose(p plan.Pair) (Vector, error) {
	v := make(Vector, Slots())
	for axis, value := range [2]int{p.X, p.Z} {
		if value < 0 || value > Capacity() {
			return nil, errors.New(errors.ErrCodeOutOfRange,
				"%s cost %d outside [0, %d]", Axis[axis], value, Capacity())
		}
		off, rem := axis*len(Denominations), value
		for i, d := range Denominations {
			if d <= rem {
				v[off+i] = true
				rem -= d
			}
		}
		if rem != 0 {
			return nil, errors.New(errors.ErrCodeInternal,
				"%s cost %d leaves remainder %d", Axis[axis], value, rem)
		}
	}
	return v, nil
}

// Compose sums the active denominations of v back into a cost pair.
func (v Vector) Compose() plan.Pair {
	var sums [2]int
	for i, on := range v {
		if on {
			sums[i/len(Denominations)] += Denominations[i%len(Denominations)]
		}
	}
	return plan.Pair{X: sums[0], Z: sums[1]}
}

// Count returns the number of active slots.
func (v Vector) Count() int {
	n := 0
	for _, on := range v {
		if on {
			n++
		}
	}
	return n
}

// String renders v as two groups of 0/1 digits, X first.
func (v Vector) String() string {
	var b strings.Builder
	for i, on := range v {
		if i == len(Denominations) {
			b.WriteByte(' ')
		}
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
