package fof

import "errors"

// Sentinel errors for the halo-pass FOF engine.
var (
	// ErrEmptyParticles indicates SearchFullSet was called with no particles.
	ErrEmptyParticles = errors.New("fof: particle set is empty")

	// ErrDistributedDesync indicates the distributed closure's collective
	// barrier reported a mismatched phase across workers (spec.md §7
	// "Distributed desync"); treated as fatal.
	ErrDistributedDesync = errors.New("fof: distributed closure desync")
)
