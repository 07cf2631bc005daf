package testgen

import (
	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
)

// TwoIsolatedBlobs builds scenario 1: two well-separated 200-particle
// Gaussian clumps at (0,0,0) and (50,0,0), σ=1 in position and velocity.
// Expect exactly 2 groups of size 200 each under a plain 3D-only FOF pass.
func TwoIsolatedBlobs() ([]core.Particle, config.Options, error) {
	particles, err := BuildSnapshot(nil,
		GaussianBlob(200, core.Dark, core.Vec3{0, 0, 0}, core.Vec3{}, 1, 1),
		GaussianBlob(200, core.Dark, core.Vec3{50, 0, 0}, core.Vec3{}, 1, 1),
	)
	if err != nil {
		return nil, config.Options{}, err
	}

	opts := config.DefaultOptions()
	opts.EllPhys = 0.5
	opts.MinSize = 20
	opts.HaloMinSize = 20
	opts.HaloSixDRefinement = false
	opts.IterativeExpansion = false

	return particles, opts, nil
}

// NestedSubstructure builds scenario 2: 5000 background particles
// uniform in [-10,10]³ (velocity σ=5) with a 400-particle cold stream at
// mean velocity (10,0,0), velocity σ=0.5, embedded at the origin. Expect
// one field halo of ≈5400 and one substructure of ≈400.
func NestedSubstructure() ([]core.Particle, config.Options, error) {
	particles, err := BuildSnapshot(nil,
		UniformBox(5000, core.Dark, core.Vec3{}, 10, 5),
		GaussianBlob(400, core.Dark, core.Vec3{}, core.Vec3{10, 0, 0}, 1, 0.5),
	)
	if err != nil {
		return nil, config.Options{}, err
	}

	opts := config.DefaultOptions()
	opts.EllThreshold = 1.5
	opts.FOFType = config.StreamProb
	opts.IterativeExpansion = true
	opts.MinSize = 50
	opts.HaloMinSize = 50
	opts.MinSubSize = 50
	opts.MinCellSize = 100

	return particles, opts, nil
}

// MergerTwoCores builds scenario 3: two overlapping 2000-particle
// clusters at (0,0,0) and (2,0,0), identical velocity dispersion. With
// halo-core search in detect-and-assign mode, expect one field halo of
// ≈4000 split into 2 cores of ≈2000 each.
func MergerTwoCores() ([]core.Particle, config.Options, error) {
	particles, err := BuildSnapshot(nil,
		GaussianBlob(2000, core.Dark, core.Vec3{0, 0, 0}, core.Vec3{}, 1, 1),
		GaussianBlob(2000, core.Dark, core.Vec3{2, 0, 0}, core.Vec3{}, 1, 1),
	)
	if err != nil {
		return nil, config.Options{}, err
	}

	opts := config.DefaultOptions()
	opts.HaloCoreSearch = config.HaloCoreDetectAndAssign
	opts.HaloCoreNFac = 0.2
	opts.MinSize = 200
	opts.HaloMinSize = 200

	return particles, opts, nil
}

// BaryonScenario builds scenario 4: scenario 1's two dark-matter blobs
// plus 100 gas particles near each blob's center, each at its blob's mean
// velocity. Expect every gas particle assigned to its spatially-nearest
// dark group with zero residual ungrouped gas.
func BaryonScenario() ([]core.Particle, config.Options, error) {
	dark, opts, err := TwoIsolatedBlobs()
	if err != nil {
		return nil, config.Options{}, err
	}

	gas, err := BuildSnapshot([]SnapshotOption{WithStartID(100000)},
		GaussianBlob(100, core.Gas, core.Vec3{0, 0, 0}, core.Vec3{}, 0.3, 1),
		GaussianBlob(100, core.Gas, core.Vec3{50, 0, 0}, core.Vec3{}, 0.3, 1),
	)
	if err != nil {
		return nil, config.Options{}, err
	}

	opts.BaryonSearch = config.BaryonSearchSeparate
	opts.PartSearchType = config.SearchAll

	return append(dark, gas...), opts, nil
}

// PeriodicWrap builds scenario 5: 300 particles Gaussian at (0.1,0,0),
// σ=0.3, in a period-1.0 box. Expect one group spanning the x=0.9/x=0.1
// wrap boundary when periodic mode is on.
func PeriodicWrap() ([]core.Particle, config.Options, error) {
	particles, err := BuildSnapshot(nil,
		GaussianBlob(300, core.Dark, core.Vec3{0.1, 0, 0}, core.Vec3{}, 0.3, 1),
	)
	if err != nil {
		return nil, config.Options{}, err
	}
	for i := range particles {
		for d := 0; d < 3; d++ {
			particles[i].Pos[d] = wrapMod(particles[i].Pos[d], 1.0)
		}
	}

	opts := config.DefaultOptions()
	opts.EllPhys = 0.4
	opts.Period = 1.0
	opts.MinSize = 20
	opts.HaloMinSize = 20

	return particles, opts, nil
}

// SignificancePruning builds scenario 6: 50 particles scattered
// uniformly at high outlier scores (an artifact clump with no real
// phase-space coherence). Expect the group dissolved (pfof=0 for all 50)
// once the significance filter runs with β_sig=5.0.
func SignificancePruning() ([]core.Particle, config.Options, error) {
	particles, err := BuildSnapshot(nil,
		UniformBox(50, core.Dark, core.Vec3{}, 20, 50),
	)
	if err != nil {
		return nil, config.Options{}, err
	}

	opts := config.DefaultOptions()
	opts.SigLevel = 5.0
	opts.MinSize = 10
	opts.HaloMinSize = 10
	opts.MinSubSize = 10

	return particles, opts, nil
}

func wrapMod(x, period float64) float64 {
	for x < 0 {
		x += period
	}
	for x >= period {
		x -= period
	}

	return x
}
