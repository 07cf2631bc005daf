package fof_test

import (
	"fmt"

	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/fof"
)

// Example runs the halo-pass FOF engine over two well-separated clusters.
func Example() {
	particles := append(
		clusterParticles(30, core.Vec3{0, 0, 0}, 0.1, 1, 1, 0),
		clusterParticles(30, core.Vec3{50, 0, 0}, 0.1, 1, 2, 1000)...,
	)
	opts := config.DefaultOptions()
	opts.HaloSixDRefinement = false
	opts.HaloMinSize = 10

	result, err := fof.SearchFullSet(particles, opts)
	if err != nil {
		panic(err)
	}
	fmt.Println(result.Labels.NumGroups())
	// Output: 2
}
