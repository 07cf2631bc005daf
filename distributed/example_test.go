package distributed_test

import (
	"context"
	"fmt"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/distributed"
	"github.com/haloforge/strux/kdtree"
)

// Example runs a two-rank closure over a cluster split across a domain
// boundary and reports that both halves end up in the same global group.
func Example() {
	linkLen2 := 0.3 * 0.3
	tree0, _ := kdtree.New([]core.Particle{
		{ID: 0, Pos: core.Vec3{0.8, 0, 0}},
		{ID: 1, Pos: core.Vec3{0.9, 0, 0}},
	}, 4, 0)
	tree1, _ := kdtree.New([]core.Particle{
		{ID: 2, Pos: core.Vec3{1.05, 0, 0}},
		{ID: 3, Pos: core.Vec3{1.15, 0, 0}},
	}, 4, 0)

	w0 := distributed.NewLocalWorker(0, tree0, tree0.FOF(linkLen2, 1, true))
	w1 := distributed.NewLocalWorker(1, tree1, tree1.FOF(linkLen2, 1, true))

	coord := &distributed.LocalCoordinator{
		Workers:        []distributed.Worker{w0, w1},
		Pred:           kdtree.NewPhysicalPredicate(linkLen2, 0),
		Radius2:        linkLen2,
		BoundaryMargin: 0.2,
	}
	if err := coord.Run(context.Background()); err != nil {
		panic(err)
	}
	fmt.Println(w0.Labels()[1] == w1.Labels()[0])
	// Output: true
}
