// Package kdtree implements the balanced k-d tree spatial index described in
// spec.md §4.1: construction over a particle array with periodic-boundary
// support, fixed-radius friends-of-friends linking (both a fixed link-length
// variant and a predicate-driven variant), k-nearest-neighbor queries, and
// the SearchCriterion primitive iterative substructure expansion is built on.
//
// The tree never owns particle memory: it indexes the caller's slice and is
// rebuilt (not mutated) whenever the particle order changes. It is private
// to whichever phase constructed it and is discarded at phase end, per
// spec.md §5 "Shared resources".
package kdtree
