// Package fof implements the halo-pass FOF engine: plain 3D friends-of-friends
// over the full particle set, an optional distributed closure across
// workers, and an optional 6D phase-space refinement pass per group
// (spec.md §4.2).
package fof
