// Package pkg provides the core libraries of cannon, a planner for TNT
// cannon barrages that carve a 528x528 silhouette into terrain.
//
// # Overview
//
// A two-axis cannon fires one shot per firing; every shot clears a 7x7
// square. Given an image, cannon chooses where to aim so that every pixel of
// the silhouette is struck, works out how much propellant each shot needs and
// puts the shots into an order that lets an operator reuse settings between
// consecutive shots.
//
// # Architecture
//
// The typical data flow:
//
//	image (PNG, JPEG, GIF, BMP, TIFF, WebP)
//	         ↓
//	    [coverage] package (classify pixels into a 528x528 map)
//	         ↓
//	    [plan] package (tile, refine and score 56 candidates, keep the best)
//	         ↓
//	    [order] package (decompose costs, sort shots into firing order)
//	         ↓
//	    [emit] / [render] packages (JSON, give commands, diagnostic PNG)
//
// [pipeline] runs the whole flow for both the CLI and the HTTP API, with
// [cache] storing the winning candidate per map and [observability] exposing
// hooks around every stage.
//
// # Quick Start
//
//	m, _, err := coverage.Decode(f, color.White)
//	if err != nil {
//	    return err
//	}
//	sel, err := plan.Select(ctx, m, plan.SelectOptions{})
//	if err != nil {
//	    return err
//	}
//	seq, err := order.Order(sel.Best)
//	if err != nil {
//	    return err
//	}
//	err = emit.WriteFunction(w, emit.Pack(seq.Vectors()))
//
// # Supporting Packages
//
// [errors] - Structured error codes shared by the CLI and the HTTP API.
//
// [config] - The optional TOML configuration file.
//
// [buildinfo] - Version information set at link time.
//
// [coverage]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/coverage
// [plan]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/plan
// [order]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/order
// [emit]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/emit
// [render]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/errors
// [config]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/config
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/cannon/pkg/buildinfo
package pkg
