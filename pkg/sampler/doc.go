// Package sampler generates the raw, noisy polyline of a single ribbon.
//
// A path runs between two anchors on opposite edges of the unit square.
// For a vertical path the anchors are (pos, 0) and (pos, 1); for a
// horizontal one they are (0, pos) and (1, pos). Forward decides which edge
// is the start.
//
// Between the anchors the path is split into Segments steps. Each step is
// displaced across the travel direction by a coherent noise sample whose
// amplitude follows a symmetric-log bell: zero at both ends, largest in the
// middle. A few extra evenly spaced points lead into and out of the noisy
// section so the ribbon enters and leaves the frame smoothly.
//
// The returned [Path] marks which points belong to the noisy section. Those
// are the points the resolver package later lifts or lowers in depth.
package sampler
