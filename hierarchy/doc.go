// Package hierarchy implements the Hierarchy Manager of spec.md §4.5: a
// linked chain of structure levels, each holding arena-indexed group
// handles so that renumbering a level's groups (by size or after
// unbinding) stays visible to every other level without re-walking the
// chain.
package hierarchy
