// Package pipeline wires the spatial index, FOF engine, outlier
// estimator, substructure searcher, hierarchy manager, significance
// filter, and baryon associator into the single entry point the rest of
// the system calls: Run takes one particle snapshot and returns the
// finalized group labels plus the flattened structure hierarchy.
package pipeline
