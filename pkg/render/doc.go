// Package render draws diagnostic images of a scored placement.
//
// [Diagnostic] paints the silhouette, every struck cell, any misses and the
// shot centers onto a [coverage.Width]-square canvas. Struck cells alternate
// between two grays so overlapping footprints stay readable; cells struck
// outside the silhouette are yellow and should never appear.
//
//	img := render.Diagnostic(m, res, render.WithScale(2), render.WithCaption())
//	data, err := render.EncodePNG(img)
//
// Scaling uses nearest-neighbour sampling from golang.org/x/image/draw so that
// single cells stay crisp. The caption is drawn with the fixed 7x13 face from
// golang.org/x/image/font/basicfont.
package render
