// Package testgen synthesizes deterministic particle snapshots for the
// pipeline's end-to-end scenarios. It mirrors the builder package's
// Constructor/Option/BuildGraph shape: BuildSnapshot resolves a
// snapshotConfig from functional options, then applies a sequence of
// Constructor closures in order to append particles to a growing slice.
//
// Scenario is a thin convenience wrapper over BuildSnapshot that bundles a
// particle generator with the config.Options known to make it converge,
// matching one of the worked examples.
package testgen
