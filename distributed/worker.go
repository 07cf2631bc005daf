package distributed

import (
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
)

// LocalWorker is the straightforward Worker implementation LocalCoordinator
// operates on: a rank number, a k-d tree over this rank's domain, and a
// mutable label array whose order matches tree.Particles().
//
// NewLocalWorker takes an already-built tree (not raw particles) because
// tree construction reorders particles in place; labels must be computed
// from that same post-build order, which only the caller's local FOF pass
// can do (e.g. tree.FOF(...)).
type LocalWorker struct {
	rank   int
	tree   *kdtree.Tree
	labels core.Labels
}

// NewLocalWorker wraps an existing tree and its corresponding label array
// as one rank of a distributed run.
func NewLocalWorker(rank int, tree *kdtree.Tree, labels core.Labels) *LocalWorker {
	return &LocalWorker{rank: rank, tree: tree, labels: labels}
}

func (w *LocalWorker) Rank() int                   { return w.rank }
func (w *LocalWorker) Particles() []core.Particle  { return w.tree.Particles() }
func (w *LocalWorker) Tree() *kdtree.Tree           { return w.tree }
func (w *LocalWorker) Labels() core.Labels          { return w.labels }
func (w *LocalWorker) SetLabels(labels core.Labels) { w.labels = labels }

var _ Worker = (*LocalWorker)(nil)
