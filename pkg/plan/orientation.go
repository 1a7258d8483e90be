package plan

import "strings"

// Orientations is the number of launch orientations.
const Orientations = 8

// Orientation selects one of the eight symmetric launch configurations.
// Bit 0 selects west, bit 1 north and bit 2 a mirrored layout.
type Orientation uint8

// West reports whether the launcher sits on the west side.
func (o Orientation) West() bool { return o&1 == 1 }

// North reports whether the launcher sits on the north side.
func (o Orientation) North() bool { return o>>1&1 == 1 }

// Mirrored reports whether the layout is mirrored.
func (o Orientation) Mirrored() bool { return o>>2&1 == 1 }

// String returns a placement description such as "mirrored north west".
func (o Orientation) String() string {
	var b strings.Builder
	if o.Mirrored() {
		b.WriteString("mirrored ")
	}
	if o.North() {
		b.WriteString("north ")
	} else {
		b.WriteString("south ")
	}
	if o.West() {
		b.WriteString("west")
	} else {
		b.WriteString("east")
	}
	return b.String()
}
