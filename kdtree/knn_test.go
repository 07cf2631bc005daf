package kdtree_test

import (
	"testing"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindNearestRejectsNonPositiveK(t *testing.T) {
	tree, err := kdtree.New(gaussianParticles(5, core.Vec3{}, 1, 1), 2, 0)
	require.NoError(t, err)
	_, _, err = tree.FindNearest(core.Vec3{}, 0)
	require.ErrorIs(t, err, kdtree.ErrInvalidK)
}

func TestFindNearestOrdersByDistance(t *testing.T) {
	particles := []core.Particle{
		{ID: 0, Pos: core.Vec3{0, 0, 0}},
		{ID: 1, Pos: core.Vec3{1, 0, 0}},
		{ID: 2, Pos: core.Vec3{2, 0, 0}},
		{ID: 3, Pos: core.Vec3{5, 0, 0}},
	}
	tree, err := kdtree.New(particles, 2, 0)
	require.NoError(t, err)

	ids, dist2, err := tree.FindNearest(core.Vec3{0, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, []float64{0, 1, 4}, dist2)
	wantIDs := []int64{0, 1, 2}
	for i, id := range ids {
		assert.Equal(t, wantIDs[i], tree.Particles()[id].ID)
	}
}

func TestSearchCriterionSmallerLabelWins(t *testing.T) {
	particles := []core.Particle{
		{ID: 0, Pos: core.Vec3{0, 0, 0}},
		{ID: 1, Pos: core.Vec3{0.1, 0, 0}},
	}
	tree, err := kdtree.New(particles, 4, 0)
	require.NoError(t, err)

	marks := make([]int, 2)
	pred := kdtree.NewPhysicalPredicate(1, 0)

	changed := tree.SearchCriterion(0, 1, pred, nil, 5, marks)
	assert.Equal(t, 1, changed)
	assert.Equal(t, 5, marks[1])

	// a larger reference label must not overwrite the existing smaller one
	changed = tree.SearchCriterion(0, 1, pred, nil, 9, marks)
	assert.Equal(t, 0, changed)
	assert.Equal(t, 5, marks[1])

	// a smaller reference label does overwrite
	changed = tree.SearchCriterion(0, 1, pred, nil, 2, marks)
	assert.Equal(t, 1, changed)
	assert.Equal(t, 2, marks[1])
}
