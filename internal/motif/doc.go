// Package motif turns images into stamp motif solids.
//
// Generate runs the whole pipeline: the image is sampled into a height map
// (package imaging), clipped into a binary grid, split into connected
// components with their holes (package blockmap), extruded component by
// component (package mesh) and finally combined, scaled to Options.Size and
// centred on the origin.
//
// # Requests
//
// Motif parameters are usually edited interactively, so requests arrive
// faster than they complete. A Dispatcher keeps one job in flight per key:
//
//	d := motif.NewDispatcher(ctx)
//	defer d.Close()
//	reply := <-d.Submit("motif", func(ctx context.Context) (*motif.Result, error) {
//		return motif.Generate(ctx, img, opts)
//	})
//
// A newer submission under the same key cancels the older one, whose
// channel then receives ErrSuperseded. Every channel receives exactly one
// Reply.
//
// # Logging
//
// The package logs nothing by default. Use SetLogger to enable output.
package motif
