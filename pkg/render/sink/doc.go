// Package sink turns weave frames into output files.
//
// # Overview
//
// A "sink" renders a [weave.Frame] into a final output format:
//
//   - SVG: one path per constant-depth run, painted in depth order
//   - PNG: the same drawing rasterized in process
//   - JSON: the raw frame for external tools
//
// All formats paint runs in ascending depth, so where two lines cross the
// one stacked higher is drawn last and appears on top.
//
// Basic usage:
//
//	svg := sink.RenderSVG(frame, sink.WithTitle("weave"))
//	png, err := sink.RenderPNG(frame, sink.WithScale(2))
//	data, err := sink.RenderJSON(frame)
//
// [Render] dispatches on a format name, and [DirWriter] writes numbered
// frame files into a directory.
package sink
