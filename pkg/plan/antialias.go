package plan

// Refine patches gaps left by a base tiling. For factor = depth down to 0 it
// tiles rows at offsets Radius+factor and, for factor > 0, Radius-factor,
// and appends every shot that strikes at least one cell of struck not yet
// struck. Coarse offsets run first, so they win cells that finer offsets
// would otherwise take.
//
// struck is updated in place and must already contain the base footprints.
// base is not modified.
func (t *Tiler) Refine(base []Shot, struck *Grid, depth int, d Direction) []Shot {
	out := append([]Shot(nil), base...)
	for factor := depth; factor >= 0; factor-- {
		extra := t.Lines(Radius+factor, d)
		if factor > 0 {
			extra = append(extra, t.Lines(Radius-factor, d)...)
		}
		for _, s := range extra {
			if struck.Mark(s) > 0 {
				out = append(out, s)
			}
		}
	}
	return out
}
