package pipeline_test

import (
	"math/rand"
	"testing"

	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clusterParticles(n int, center, velCenter core.Vec3, posSigma, velSigma float64, seed int64, startID int64, typ core.ParticleType) []core.Particle {
	rng := rand.New(rand.NewSource(seed))
	out := make([]core.Particle, n)
	for i := range out {
		out[i] = core.Particle{
			ID:   startID + int64(i),
			Mass: 1,
			Type: typ,
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

func testContext(t *testing.T, opts config.Options) *pipeline.Context {
	t.Helper()
	logger := zap.NewNop()

	return &pipeline.Context{Options: opts, Logger: logger}
}

func baseOpts() config.Options {
	o := config.DefaultOptions()
	o.MinSubSize = 10
	o.MinSize = 10
	o.HaloMinSize = 20
	o.MinCellSize = 15
	o.NCellFac = 0.1
	o.BucketSize = 8
	o.EllPhys = 1
	o.EllXScale = 2
	o.EllVel = 1
	o.EllVScale = 2
	o.EllThreshold = 0.3
	o.SigLevel = 0.1
	o.NCell = 0
	o.HaloSixDRefinement = false

	return o
}

func TestRunRejectsEmptySnapshot(t *testing.T) {
	ctx := testContext(t, baseOpts())
	_, err := pipeline.Run(ctx, nil)
	require.ErrorIs(t, err, pipeline.ErrNoParticles)
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	opts := baseOpts()
	opts.EllPhys = -1
	ctx := testContext(t, opts)
	particles := clusterParticles(30, core.Vec3{}, core.Vec3{}, 1, 1, 1, 0, core.Dark)

	_, err := pipeline.Run(ctx, particles)
	require.Error(t, err)
}

func TestRunFindsHaloAndBuildsHierarchy(t *testing.T) {
	haloA := clusterParticles(120, core.Vec3{0, 0, 0}, core.Vec3{}, 2, 1, 1, 0, core.Dark)
	haloB := clusterParticles(120, core.Vec3{50, 50, 50}, core.Vec3{}, 2, 1, 2, 1000, core.Dark)
	particles := append(append([]core.Particle(nil), haloA...), haloB...)

	ctx := testContext(t, baseOpts())
	result, err := pipeline.Run(ctx, particles)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.PFOF, len(particles))
	assert.GreaterOrEqual(t, len(result.Hierarchy.Handles), 2)
}

func TestRunAssociatesBaryonsWhenEnabled(t *testing.T) {
	dark := clusterParticles(150, core.Vec3{}, core.Vec3{}, 2, 1, 3, 0, core.Dark)
	gas := clusterParticles(20, core.Vec3{}, core.Vec3{}, 0.5, 0.5, 4, 10000, core.Gas)
	particles := append(append([]core.Particle(nil), dark...), gas...)

	opts := baseOpts()
	opts.BaryonSearch = config.BaryonSearchSeparate
	opts.PartSearchType = config.SearchDMOnly

	ctx := testContext(t, opts)
	result, err := pipeline.Run(ctx, particles)
	require.NoError(t, err)
	assert.Len(t, result.PFOF, len(particles))
}
