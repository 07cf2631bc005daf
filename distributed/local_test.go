package distributed_test

import (
	"context"
	"testing"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/distributed"
	"github.com/haloforge/strux/kdtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWorker(t *testing.T, rank int, particles []core.Particle, linkLen2 float64) *distributed.LocalWorker {
	t.Helper()
	tree, err := kdtree.New(particles, 4, 0)
	require.NoError(t, err)
	labels := tree.FOF(linkLen2, 1, true)

	return distributed.NewLocalWorker(rank, tree, labels)
}

func TestRunRejectsNoWorkers(t *testing.T) {
	c := &distributed.LocalCoordinator{}
	require.ErrorIs(t, c.Run(context.Background()), distributed.ErrNoWorkers)
}

func TestRunMergesGroupsAcrossBoundary(t *testing.T) {
	// Two ranks, each holding one half of a single physical cluster that
	// straddles the domain split at x=1: rank 0 owns x<1, rank 1 owns
	// x>=1. Each rank's local FOF groups its own pair, so only the
	// cross-rank closure unifies the two pairs into one group.
	linkLen2 := 0.3 * 0.3
	rank0 := []core.Particle{
		{ID: 0, Pos: core.Vec3{0.8, 0, 0}},
		{ID: 1, Pos: core.Vec3{0.9, 0, 0}},
	}
	rank1 := []core.Particle{
		{ID: 2, Pos: core.Vec3{1.05, 0, 0}},
		{ID: 3, Pos: core.Vec3{1.15, 0, 0}},
	}

	w0 := buildWorker(t, 0, rank0, linkLen2)
	w1 := buildWorker(t, 1, rank1, linkLen2)

	pred := kdtree.NewPhysicalPredicate(linkLen2, 0)
	coord := &distributed.LocalCoordinator{
		Workers:        []distributed.Worker{w0, w1},
		Pred:           pred,
		Radius2:        linkLen2,
		BoundaryMargin: 0.2,
	}
	require.NoError(t, coord.Run(context.Background()))

	l0 := w0.Labels()
	l1 := w1.Labels()
	require.NotZero(t, l0[0])
	require.NotZero(t, l0[1])
	require.NotZero(t, l1[0])
	require.NotZero(t, l1[1])
	assert.Equal(t, l0[0], l0[1])
	assert.Equal(t, l0[1], l1[0])
	assert.Equal(t, l1[0], l1[1])
}

func TestRunLeavesDistantDomainsUnmerged(t *testing.T) {
	linkLen2 := 0.3 * 0.3
	rank0 := []core.Particle{
		{ID: 0, Pos: core.Vec3{0, 0, 0}},
		{ID: 1, Pos: core.Vec3{0.1, 0, 0}},
	}
	rank1 := []core.Particle{
		{ID: 2, Pos: core.Vec3{100, 0, 0}},
		{ID: 3, Pos: core.Vec3{100.1, 0, 0}},
	}
	w0 := buildWorker(t, 0, rank0, linkLen2)
	w1 := buildWorker(t, 1, rank1, linkLen2)

	pred := kdtree.NewPhysicalPredicate(linkLen2, 0)
	coord := &distributed.LocalCoordinator{
		Workers:        []distributed.Worker{w0, w1},
		Pred:           pred,
		Radius2:        linkLen2,
		BoundaryMargin: 0.2,
	}
	require.NoError(t, coord.Run(context.Background()))

	assert.NotEqual(t, w0.Labels()[0], w1.Labels()[0])
}
