package density_test

import (
	"math/rand"
	"testing"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/density"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coldParticles(n int, sigma float64, seed int64) []core.Particle {
	rng := rand.New(rand.NewSource(seed))
	out := make([]core.Particle, n)
	for i := range out {
		out[i] = core.Particle{
			ID:   int64(i),
			Mass: 1,
			Pos:  core.Vec3{rng.Float64() * 10, rng.Float64() * 10, rng.Float64() * 10},
			Vel:  core.Vec3{rng.NormFloat64() * sigma, rng.NormFloat64() * sigma, rng.NormFloat64() * sigma},
		}
	}

	return out
}

func TestBuildRejectsEmptySubset(t *testing.T) {
	_, err := density.Build(nil, nil, 0.1, 10)
	require.ErrorIs(t, err, density.ErrEmptySubset)
}

func TestBuildDoublesOccupancyBelowFloor(t *testing.T) {
	particles := coldParticles(400, 1, 1)
	indices := make([]int, len(particles))
	for i := range indices {
		indices[i] = i
	}

	// ncellfac picked so the raw target (0.001*400 < minCellSize) forces at
	// least one doubling past the MinCellOccupancyFraction floor.
	est, err := density.Build(particles, indices, 0.001, 5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, float64(est.ResolvedCellSize()), density.MinCellOccupancyFraction*float64(len(particles)))
}

func TestEstimateScoresTypicalParticlesNearZero(t *testing.T) {
	particles := coldParticles(2000, 1, 2)
	indices := make([]int, len(particles))
	for i := range indices {
		indices[i] = i
	}

	est, err := density.Build(particles, indices, 0.1, 10)
	require.NoError(t, err)
	est.Estimate()

	var mean float64
	for _, p := range est.Particles() {
		mean += p.Potential
	}
	mean /= float64(len(est.Particles()))

	// A homogeneous Gaussian velocity field should average close to the
	// chi-square(3) mean, i.e. ℓ close to 0.
	assert.InDelta(t, 0, mean, 0.5)
}

func TestEstimateFlagsVelocityOutlier(t *testing.T) {
	particles := coldParticles(500, 0.2, 3)
	// Inject one particle with a wildly different velocity than the
	// surrounding cold background.
	particles = append(particles, core.Particle{
		ID:   int64(len(particles)),
		Mass: 1,
		Pos:  core.Vec3{5, 5, 5},
		Vel:  core.Vec3{50, 50, 50},
	})
	indices := make([]int, len(particles))
	for i := range indices {
		indices[i] = i
	}

	est, err := density.Build(particles, indices, 0.1, 10)
	require.NoError(t, err)
	est.Estimate()

	var maxScore float64
	var outlierID int64
	for _, p := range est.Particles() {
		if p.Potential > maxScore {
			maxScore = p.Potential
			outlierID = p.ID
		}
	}
	assert.Equal(t, int64(len(particles)-1), outlierID)
	assert.Greater(t, maxScore, 10.0)
}

func TestBuildFallsBackOnSingularCell(t *testing.T) {
	// Every particle sits at the exact same velocity: the dispersion matrix
	// is the zero matrix, which is singular.
	particles := make([]core.Particle, 20)
	for i := range particles {
		particles[i] = core.Particle{ID: int64(i), Mass: 1, Pos: core.Vec3{float64(i), 0, 0}}
	}
	indices := make([]int, len(particles))
	for i := range indices {
		indices[i] = i
	}

	est, err := density.Build(particles, indices, 1, 20)
	require.NoError(t, err)
	for _, cell := range est.Cells() {
		assert.True(t, cell.Singular)
	}

	require.NotPanics(t, est.Estimate)
}
