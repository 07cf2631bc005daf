package baryon_test

import (
	"fmt"

	"github.com/haloforge/strux/baryon"
	"github.com/haloforge/strux/core"
)

// Example associates a single gas particle sitting right on top of a
// dark-matter group.
func Example() {
	dark := make([]core.Particle, 10)
	labels := make(core.Labels, 10)
	for i := range dark {
		dark[i] = core.Particle{ID: int64(i), Mass: 1, Pos: core.Vec3{float64(i) * 0.01, 0, 0}}
		labels[i] = 1
	}
	gas := []core.Particle{{ID: 100, Type: core.Gas, Mass: 0.2, Pos: core.Vec3{0.01, 0, 0}}}

	assigned, summary, err := baryon.Associate(dark, labels, gas, nil, baryon.Params{K: 4, EllX: 1, EllV: 1})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(assigned[0], summary[1].GasCount)
	// Output: 1 1
}
