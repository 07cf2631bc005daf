package distributed

import (
	"context"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
)

// Worker is one rank's local state: its particle subset, the local tree
// built for boundary-proximity queries, and its local labels from the
// 3D FOF pass (replaced through SetLabels by Coordinator.Run).
type Worker interface {
	Rank() int
	Particles() []core.Particle
	Tree() *kdtree.Tree
	Labels() core.Labels
	SetLabels(core.Labels)
}

// Coordinator drives the distributed closure over a set of Workers.
type Coordinator interface {
	Run(ctx context.Context) error
}

// globalID uniquely identifies one (rank, local label) group before the
// closure has reconciled ranks into a single id space.
type globalID struct {
	rank  int
	label int
}
