// Package density implements the local-density/outlier estimator from
// spec.md §4.3: a coarse grid over a particle subset, per-cell bulk
// velocity and velocity-dispersion statistics, and a per-particle
// phase-space density ratio and log-outlier score (ℓ) derived from a
// Gaussian model of each cell's local velocity distribution.
package density
