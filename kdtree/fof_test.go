package kdtree_test

import (
	"testing"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 from spec.md §8: two well-separated Gaussian blobs of 200
// particles each should FOF into exactly two groups of size 200.
func TestFOFTwoIsolatedBlobs(t *testing.T) {
	a := gaussianParticles(200, core.Vec3{0, 0, 0}, 1, 1)
	b := gaussianParticles(200, core.Vec3{50, 0, 0}, 1, 2)
	for i := range b {
		b[i].ID += 200
	}
	particles := append(a, b...)

	tree, err := kdtree.New(particles, 16, 0)
	require.NoError(t, err)

	labels := tree.FOF(0.5*0.5, 20, true)
	require.NoError(t, core.ValidateLabels(labels, nil))
	assert.Equal(t, 2, labels.NumGroups())

	counts := core.NumInGroup(labels)
	assert.ElementsMatch(t, []int{200, 200}, []int{counts[1], counts[2]})
}

func TestFOFAllIdenticalPositionsFormOneGroup(t *testing.T) {
	particles := make([]core.Particle, 30)
	for i := range particles {
		particles[i] = core.Particle{ID: int64(i), Pos: core.Vec3{1, 1, 1}}
	}
	tree, err := kdtree.New(particles, 8, 0)
	require.NoError(t, err)

	labels := tree.FOF(1e-6, 10, true)
	require.Equal(t, 1, labels.NumGroups())
	assert.Equal(t, 30, core.NumInGroup(labels)[1])
}

func TestFOFBelowMinSizeYieldsNoGroups(t *testing.T) {
	particles := make([]core.Particle, 5)
	for i := range particles {
		particles[i] = core.Particle{ID: int64(i), Pos: core.Vec3{1, 1, 1}}
	}
	tree, err := kdtree.New(particles, 8, 0)
	require.NoError(t, err)

	labels := tree.FOF(1e-6, 20, true)
	assert.Equal(t, 0, labels.NumGroups())
	for _, g := range labels {
		assert.Equal(t, 0, g)
	}
}

// Scenario 5 from spec.md §8: a cluster straddling the periodic boundary
// is found as one group iff periodic mode is on.
func TestFOFPeriodicWrap(t *testing.T) {
	particles := []core.Particle{
		{ID: 0, Pos: core.Vec3{0.95, 0.5, 0.5}},
		{ID: 1, Pos: core.Vec3{0.05, 0.5, 0.5}},
	}

	nonPeriodic, err := kdtree.New(append([]core.Particle{}, particles...), 2, 0)
	require.NoError(t, err)
	labelsNP := nonPeriodic.FOF(0.2*0.2, 2, true)
	assert.Equal(t, 0, labelsNP.NumGroups(), "separation 0.9 exceeds link length without wrap")

	periodic, err := kdtree.New(append([]core.Particle{}, particles...), 2, 1.0)
	require.NoError(t, err)
	labelsP := periodic.FOF(0.2*0.2, 2, true)
	assert.Equal(t, 1, labelsP.NumGroups(), "wrap-around separation is 0.1, within link length")
}

func TestFOFCriterionHonorsFilterReject(t *testing.T) {
	particles := []core.Particle{
		{ID: 0, Pos: core.Vec3{0, 0, 0}},
		{ID: 1, Pos: core.Vec3{0.25, 0, 0}},
		{ID: 2, Pos: core.Vec3{0.5, 0, 0}},
	}
	tree, err := kdtree.New(particles, 8, 0)
	require.NoError(t, err)

	pred := kdtree.NewPhysicalPredicate(0.3*0.3, 0)
	filter := func(idx int) kdtree.FilterResult {
		if idx == 1 {
			return kdtree.FilterReject
		}

		return kdtree.FilterAccept
	}
	withBridge := tree.FOFCriterion(pred, 0.3*0.3, 1, nil, true)
	require.Equal(t, 1, withBridge.NumGroups(), "0-1-2 chain-links through the bridge particle")

	withoutBridge := tree.FOFCriterion(pred, 0.3*0.3, 1, filter, true)
	// particle 1 is excluded from linking (both as initiator and as
	// target), so 0 and 2 no longer chain-link through it; with minsize 1
	// each of the three particles is its own group.
	assert.Equal(t, 3, withoutBridge.NumGroups())
	assert.NotEqual(t, withoutBridge[0], withoutBridge[2])
}
