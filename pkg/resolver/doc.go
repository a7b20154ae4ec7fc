// Package resolver lifts or lowers the points of a new ribbon so it appears
// to weave over and under the ribbons already on the canvas.
//
// # Algorithm
//
// Points are processed in path order. For each point the resolver collects
// the points of other lines that lie closer than the collision threshold in
// the XY plane (depth is ignored), then compares the sorted depths of that
// overlap set with the previous point's:
//
//   - unchanged set: keep the previous point's depth
//   - empty set: return to the base depth and flip the stacking direction
//   - otherwise: sit one threshold above the highest neighbour, or one
//     threshold below the lowest, depending on the carried direction
//
// The pass is greedy and order dependent; no point is revisited.
//
// # Indexes
//
// Overlap queries go through an [Index]. [Linear] scans every stored point
// and is the reference behaviour. [Grid] buckets points into square cells
// and only visits neighbouring cells. Both return overlap sets in insertion
// order, so swapping one for the other never changes the output.
package resolver
