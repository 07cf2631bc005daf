package pipeline

import "errors"

// ErrNoParticles is returned when Run is called with an empty snapshot.
var ErrNoParticles = errors.New("pipeline: no particles in snapshot")
