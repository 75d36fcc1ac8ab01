// Package geom holds the pure geometry used by the collision core: rectangles,
// circles, static overlap tests, and swept time-of-impact tests. Nothing here
// knows about colliders, owners, or the partition.
//
// Coordinates are screen-style (Y grows downward) but no function depends on
// the handedness.
package geom
