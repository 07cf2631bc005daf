package testgen

import "errors"

// ErrTooFewParticles indicates a generator was asked for fewer particles
// than it can meaningfully produce (n < 1).
var ErrTooFewParticles = errors.New("testgen: too few particles")

// ErrInvalidSigma indicates a negative dispersion was requested.
var ErrInvalidSigma = errors.New("testgen: sigma must be >= 0")

// ErrNeedRandSource indicates a stochastic constructor ran without an RNG
// in the resolved snapshotConfig — BuildSnapshot always supplies one, so
// this only fires when a Constructor is invoked directly outside it.
var ErrNeedRandSource = errors.New("testgen: rng is required")
