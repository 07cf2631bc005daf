package density

import "errors"

// Sentinel errors for outlier estimation.
var (
	// ErrEmptySubset indicates Build was called with zero particles.
	ErrEmptySubset = errors.New("density: particle subset is empty")

	// ErrSingularDispersion indicates a cell's velocity-dispersion matrix
	// could not be inverted (degenerate cell, e.g. a single particle or
	// zero-spread velocities). Handled by falling back to the halo-wide
	// HaloVelDispScale per spec.md §7 "Numerical" error kind.
	ErrSingularDispersion = errors.New("density: singular velocity-dispersion matrix")
)
