// Package render groups the output side of weave.
//
// # Overview
//
// The engine produces [weave.Frame] values: strokes in camera space with a
// color, a width and a depth per point. Everything that turns frames into
// something visible lives below this package:
//
//   - [sink]: SVG, PNG and JSON encoders plus a directory writer
//
// The terminal preview and the HTTP server in the CLI are further consumers
// of the same frames.
//
// [sink]: github.com/matzehuels/weave/pkg/render/sink
// [weave.Frame]: github.com/matzehuels/weave/pkg/weave.Frame
package render
