package testgen

import "math/rand"

// SnapshotOption customizes the snapshotConfig BuildSnapshot resolves
// before running its constructors, mirroring builder.BuilderOption.
type SnapshotOption func(cfg *snapshotConfig)

// snapshotConfig holds the shared state every Constructor may read: the
// RNG stream (always non-nil once resolved) and the running particle ID
// counter so repeated constructors never collide on ID.
type snapshotConfig struct {
	rng    *rand.Rand
	nextID int64
}

func newSnapshotConfig(opts ...SnapshotOption) *snapshotConfig {
	cfg := &snapshotConfig{rng: rand.New(rand.NewSource(1))}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return cfg
}

// WithSeed seeds the deterministic RNG stream every Constructor draws
// from. Two BuildSnapshot calls with the same seed and constructor order
// produce byte-identical snapshots.
func WithSeed(seed int64) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.rng = rand.New(rand.NewSource(seed))
	}
}

// WithStartID offsets the running particle ID counter, so a snapshot
// assembled from several Constructor calls never reuses an ID across
// them.
func WithStartID(id int64) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.nextID = id
	}
}
