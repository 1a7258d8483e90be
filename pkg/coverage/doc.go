// Package coverage holds the immutable silhouette grid that every planning
// stage reads.
//
// A [Map] is a fixed [Width]×[Width] grid of booleans. A true cell is a
// "required" cell: some blast must strike it. Maps are built once per run,
// either from raw rows with [New] or from a decoded raster with [FromImage] /
// [Decode], and are safe to share between goroutines afterwards because no
// method mutates them.
//
// # Decoding
//
// [Decode] understands PNG, JPEG and GIF through the standard library and
// BMP, TIFF and WebP through golang.org/x/image. Every pixel that is not
// exactly the background color is required:
//
//	m, format, err := coverage.Decode(f, color.White)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(format, m.Total())
package coverage
