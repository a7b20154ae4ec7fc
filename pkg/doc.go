// Package pkg holds the weave libraries.
//
// # Overview
//
// Weave draws noisy lines from one edge of an orthographic canvas to the
// other and stacks them in depth wherever they cross, so the lines appear to
// weave over and under each other while they draw in and fade out.
//
// # Architecture
//
// A frame is produced in this order:
//
//	[viewport]  camera framing, padding, undulation
//	     ↓
//	[sampler]   noisy path between two anchors on opposite edges
//	     ↓
//	[resolver]  per-point depth against previously placed lines
//	     ↓
//	[weave]     slots, reveal, fade, eviction → weave.Frame
//	     ↓
//	[scene]     resize / frame / teardown callbacks driving a renderer
//	     ↓
//	[render/sink] SVG, PNG, JSON
//
// Supporting packages:
//
//   - [geom]: immutable 3D points and interpolation
//   - [rng]: seeded randomness and 2D simplex noise
//   - [palette]: color palettes and the slot gradient
//   - [config]: engine parameters, presets and TOML loading
//   - [errors]: coded errors
//   - [observability]: lifecycle, render, cache and server hooks
//
// Orchestration:
//
//   - [pipeline]: replays a timeline at a fixed rate and encodes frames
//     through [cache]
//   - [session]: live animations for the HTTP server, with [httputil]
//     helpers for its handlers
//   - [buildinfo]: version information
//
// # Quick Start
//
//	m, err := weave.New(config.Default(), rng.New(678975))
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	m.Resize(viewport.Resize(1, 1024, 1024))
//	for i := 0; i < 300; i++ {
//	    frame := m.Update(float64(i) / 30)
//	    svg := sink.RenderSVG(frame)
//	    _ = svg
//	}
package pkg
