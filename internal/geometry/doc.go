// Package geometry provides the small amount of planar computational
// geometry the pitch analysis needs: convex hulls of point sets and
// boundary-inclusive containment tests against convex polygons.
//
// The implementation is Andrew's monotone chain, O(n log n) from the sort.
// Hulls are returned in counter-clockwise order with collinear edge points
// excluded, so every returned vertex is a strict corner. Point sets whose
// hull degenerates to a point or a segment yield no hull at all; callers
// treat that the same as "too few points".
//
// All functions are pure and safe for concurrent use.
package geometry
