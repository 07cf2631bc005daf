package distributed

import "errors"

// Sentinel errors for the distributed coordinator.
var (
	// ErrNoWorkers indicates a Coordinator was run with zero workers.
	ErrNoWorkers = errors.New("distributed: no workers registered")

	// ErrDesync indicates a collective barrier observed a worker that did
	// not report (spec.md §7 "Distributed desync"); treated as fatal.
	ErrDesync = errors.New("distributed: collective barrier desync")
)
