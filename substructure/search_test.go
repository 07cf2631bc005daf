package substructure_test

import (
	"math/rand"
	"testing"

	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/substructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clusterParticles(n int, center, velCenter core.Vec3, posSigma, velSigma float64, seed int64, startID int64) []core.Particle {
	rng := rand.New(rand.NewSource(seed))
	out := make([]core.Particle, n)
	for i := range out {
		out[i] = core.Particle{
			ID:   startID + int64(i),
			Mass: 1,
			Pos: core.Vec3{
				center[0] + rng.NormFloat64()*posSigma,
				center[1] + rng.NormFloat64()*posSigma,
				center[2] + rng.NormFloat64()*posSigma,
			},
			Vel: core.Vec3{
				velCenter[0] + rng.NormFloat64()*velSigma,
				velCenter[1] + rng.NormFloat64()*velSigma,
				velCenter[2] + rng.NormFloat64()*velSigma,
			},
		}
	}

	return out
}

func baseOpts() config.Options {
	o := config.DefaultOptions()
	o.MinSubSize = 10
	o.MinSize = 10
	o.MinCellSize = 5
	o.NCellFac = 0.1
	o.BucketSize = 8
	o.EllPhys = 1
	o.EllXScale = 2
	o.EllVel = 1
	o.EllVScale = 2
	o.EllThreshold = 0.3
	o.SigLevel = 0.1
	o.NCell = 0 // disable background pass for the baseline fixture

	return o
}

func allIdx(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

func TestSearchSubsetCoreRejectsEmpty(t *testing.T) {
	_, err := substructure.SearchSubsetCore(nil, nil, baseOpts(), 0, nil)
	require.ErrorIs(t, err, substructure.ErrEmptySubset)
}

func TestSearchSubsetCoreRejectsTooSmall(t *testing.T) {
	opts := baseOpts()
	opts.MinSubSize = 50
	particles := clusterParticles(10, core.Vec3{}, core.Vec3{}, 1, 1, 1, 0)
	_, err := substructure.SearchSubsetCore(particles, allIdx(10), opts, 0, nil)
	require.ErrorIs(t, err, substructure.ErrSubsetTooSmall)
}

func TestSearchSubsetCoreReturnsLabelsParallelToIndices(t *testing.T) {
	particles := clusterParticles(60, core.Vec3{}, core.Vec3{}, 5, 1, 7, 0)
	result, err := substructure.SearchSubsetCore(particles, allIdx(60), baseOpts(), 0, nil)
	require.NoError(t, err)
	assert.Len(t, result.Labels, 60)
	assert.Len(t, result.Ell, 60)
}

func TestSearchSubsetCoreFindsColdStream(t *testing.T) {
	background := clusterParticles(200, core.Vec3{}, core.Vec3{}, 10, 3, 11, 0)
	stream := clusterParticles(30, core.Vec3{2, 2, 2}, core.Vec3{6, 0, 0}, 0.3, 0.1, 12, 1000)
	particles := append(append([]core.Particle(nil), background...), stream...)

	opts := baseOpts()
	opts.IterativeExpansion = true

	result, err := substructure.SearchSubsetCore(particles, allIdx(len(particles)), opts, 0, nil)
	require.NoError(t, err)
	// The tightly-bound, kinematically distinct stream should register as
	// at least one surviving group after termination.
	assert.GreaterOrEqual(t, result.Labels.NumGroups(), 1)
}
