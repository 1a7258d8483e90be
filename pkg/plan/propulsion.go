package plan

import (
	"math"

	"github.com/matzehuels/cannon/pkg/coverage"
)

// Projectile model constants. The parities are the two calibrated offsets
// at which a projectile can sit relative to its launch block; they were
// measured as single-precision values.
var (
	ParityA = float64(float32(0.49))
	ParityB = float64(float32(0.51))
)

// UnitStep is the distance one launch unit moves a projectile.
const UnitStep = 0.25 - 1.111853393488571e-3

// Propulsion returns the number of launch units needed to move a projectile
// distance blocks from a launch position at the given parity. Of the two
// candidate counts it returns the one whose residual lands closer to the
// center of the target block.
func Propulsion(distance int, parity float64) int {
	dv := float64(distance) + 0.5 - parity
	n := int(dv / UnitStep)
	if math.Abs(math.Mod(dv, 1)-0.5) < math.Abs(math.Mod(dv+UnitStep+parity, 1)-0.5) {
		return n
	}
	return n + 1
}

// costTable computes the eight orientation costs for a blast at (row, col).
// X distances are measured from the north (row) and south (W-row) edges, Z
// distances from the west (col) and east (W-col) edges.
func costTable(row, col int) [Orientations]Pair {
	var (
		xbn = Propulsion(coverage.Width-row, ParityB)
		xbp = Propulsion(row, ParityB)
		xan = Propulsion(coverage.Width-row, ParityA)
		xap = Propulsion(row, ParityA)
		zbn = Propulsion(coverage.Width-col, ParityB)
		zbp = Propulsion(col, ParityB)
		zan = Propulsion(coverage.Width-col, ParityA)
		zap = Propulsion(col, ParityA)
	)
	return [Orientations]Pair{
		{xbn, zan}, // south east
		{xap, zbn}, // south west
		{xan, zbp}, // north east
		{xbp, zap}, // north west

		{xan, zbn}, // mirrored south east
		{xbp, zan}, // mirrored south west
		{xbn, zap}, // mirrored north east
		{xap, zbp}, // mirrored north west
	}
}
