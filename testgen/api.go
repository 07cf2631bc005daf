package testgen

import (
	"fmt"

	"github.com/haloforge/strux/core"
)

// Constructor appends particles to the snapshot using the resolved
// snapshotConfig, mirroring builder.Constructor. Constructors must draw
// randomness only from cfg.rng, and must claim particle IDs by
// incrementing cfg.nextID, so composition stays deterministic and
// collision-free regardless of call order.
type Constructor func(cfg *snapshotConfig) ([]core.Particle, error)

// BuildSnapshot resolves a snapshotConfig from opts and applies each
// Constructor in order, concatenating their output into one particle
// slice. A nil Constructor or a Constructor error aborts immediately.
func BuildSnapshot(opts []SnapshotOption, cons ...Constructor) ([]core.Particle, error) {
	cfg := newSnapshotConfig(opts...)

	var out []core.Particle
	for i, c := range cons {
		if c == nil {
			return nil, fmt.Errorf("BuildSnapshot: nil constructor at index %d", i)
		}
		particles, err := c(cfg)
		if err != nil {
			return nil, fmt.Errorf("BuildSnapshot: %w", err)
		}
		out = append(out, particles...)
	}

	return out, nil
}
