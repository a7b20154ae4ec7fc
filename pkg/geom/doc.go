// Package geom provides the immutable point type shared by the weave
// packages.
//
// Points are plain values. Every operation returns a new [Point] and never
// modifies its receiver, so a point stored in a finished line can be handed
// to any number of computations without aliasing:
//
//	a := geom.Pt(0, 0.5, 0)
//	b := geom.Pt(1, 0.5, 0)
//	mid := geom.Lerp(a, b, 0.5) // (0.5, 0.5, 0)
//
// X and Y live in the normalized [0,1] canvas domain until the viewport
// package maps them to camera space. Z is the stacking depth in camera
// near/far units.
package geom
