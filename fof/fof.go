package fof

import (
	"context"
	"math"

	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/density"
	"github.com/haloforge/strux/distributed"
	"github.com/haloforge/strux/kdtree"
)

// SearchFullSet is the halo-pass FOF entry point (spec.md §4.2): a plain
// 3D FOF over every particle, an optional distributed closure across
// opts.MaxWorkers workers, and an optional 6D phase-space refinement pass
// per 3D group.
//
// SearchFullSet reorders particles in place (kdtree.New's documented
// contract) and returns Labels indexed against that same, now-reordered,
// slice — callers that need the original order must track particle.ID,
// which survives reordering unchanged.
func SearchFullSet(particles []core.Particle, opts config.Options) (*Result, error) {
	if len(particles) == 0 {
		return nil, ErrEmptyParticles
	}

	ellX2 := math.Pow(opts.EllXScale*opts.EllPhys*opts.EllHaloPhysFac, 2)

	var labels core.Labels
	var err error
	if opts.MaxWorkers > 1 {
		labels, err = searchDistributed(particles, ellX2, opts)
	} else {
		var tree *kdtree.Tree
		tree, err = kdtree.New(particles, opts.BucketSize, opts.Period)
		if err == nil {
			labels = tree.FOF(ellX2, opts.HaloMinSize, true)
		}
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Labels: labels, GroupVelDisp2: make(map[int]float64)}

	if opts.HaloSixDRefinement {
		result.Labels, result.GroupVelDisp2, err = refine6D(particles, labels, ellX2, opts)
		if err != nil {
			return nil, err
		}
	}

	if opts.Period > 0 {
		shiftGroupsToReference(particles, result.Labels, opts.Period)
	}

	return result, nil
}

// refine6D implements spec.md §4.2 step 4: for each 3D group, compute its
// mass-weighted mean velocity and inflated velocity variance, then run a
// 6D phase-space FOF restricted to that group's members and splice the
// result back into the global label array. The same minsize floor is
// re-applied once after every group has been spliced.
func refine6D(particles []core.Particle, labels core.Labels, ellX2 float64, opts config.Options) (core.Labels, map[int]float64, error) {
	numGroups := labels.NumGroups()
	spliced := make(core.Labels, len(labels))
	dispByGroup := make(map[int]float64, numGroups)
	offset := 0

	for g := 1; g <= numGroups; g++ {
		indices := groupIndices(labels, g)
		if len(indices) == 0 {
			continue
		}

		_, variance := massWeightedVelocityStats(particles, indices)
		ellV2 := variance * density.InflationFactor
		dispByGroup[g] = ellV2

		sub := make([]core.Particle, len(indices))
		idToOriginal := make(map[int64]int, len(indices))
		for j, idx := range indices {
			sub[j] = particles[idx]
			idToOriginal[particles[idx].ID] = idx
		}

		subTree, err := kdtree.New(sub, opts.BucketSize, opts.Period)
		if err != nil {
			return nil, nil, err
		}
		subLabels := subTree.FOFCriterion(
			kdtree.NewPhaseSpacePredicate(ellX2, ellV2, opts.Period),
			ellX2, 1, nil, true,
		)

		maxSubLabel := 0
		for j, sp := range subTree.Particles() {
			sl := subLabels[j]
			if sl == 0 {
				continue
			}
			orig := idToOriginal[sp.ID]
			spliced[orig] = offset + sl
			if sl > maxSubLabel {
				maxSubLabel = sl
			}
		}
		offset += maxSubLabel
	}

	compacted, _ := core.CompactLabels(spliced, opts.HaloMinSize)

	return compacted, dispByGroup, nil
}

func groupIndices(labels core.Labels, g int) []int {
	var out []int
	for i, l := range labels {
		if l == g {
			out = append(out, i)
		}
	}

	return out
}

func massWeightedVelocityStats(particles []core.Particle, indices []int) (core.Vec3, float64) {
	var mass float64
	var mean core.Vec3
	for _, idx := range indices {
		p := &particles[idx]
		mean = mean.Add(p.Vel.Scale(p.Mass))
		mass += p.Mass
	}
	if mass > 0 {
		mean = mean.Scale(1 / mass)
	}

	var variance float64
	for _, idx := range indices {
		p := &particles[idx]
		d := p.Vel.Sub(mean)
		variance += d.Norm2() * p.Mass
	}
	if mass > 0 {
		variance /= mass
	}

	return mean, variance
}

// shiftGroupsToReference applies spec.md §4.2 step 6: within each group,
// shift particles so distances to the group's representative (its first
// member) never exceed half the period.
func shiftGroupsToReference(particles []core.Particle, labels core.Labels, period float64) {
	byGroup := make(map[int][]int)
	for i, l := range labels {
		if l == 0 {
			continue
		}
		byGroup[l] = append(byGroup[l], i)
	}
	for _, indices := range byGroup {
		ref := particles[indices[0]].Pos
		kdtree.ShiftToReference(particles, indices, ref, period)
	}
}

// searchDistributed partitions particles into opts.MaxWorkers contiguous
// domains, runs a local (floor-minsize) 3D FOF on each, and reconciles
// cross-domain links via distributed.LocalCoordinator (spec.md §4.2 step
// 3, §5). particles is partitioned and reordered in place; Labels returned
// is indexed against that same final order.
func searchDistributed(particles []core.Particle, ellX2 float64, opts config.Options) (core.Labels, error) {
	numWorkers := opts.MaxWorkers
	n := len(particles)
	if numWorkers > n {
		numWorkers = n
	}
	chunk := (n + numWorkers - 1) / numWorkers

	workers := make([]distributed.Worker, 0, numWorkers)
	idToOriginal := make(map[int64]int, n)
	for rank := 0; rank*chunk < n; rank++ {
		lo := rank * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		domain := particles[lo:hi]
		tree, err := kdtree.New(domain, opts.BucketSize, opts.Period)
		if err != nil {
			return nil, err
		}
		localLabels := tree.FOF(ellX2, 1, true)
		for j, p := range tree.Particles() {
			idToOriginal[p.ID] = lo + j
		}
		workers = append(workers, distributed.NewLocalWorker(rank, tree, localLabels))
	}

	coord := &distributed.LocalCoordinator{
		Workers:        workers,
		Pred:           kdtree.NewPhysicalPredicate(ellX2, opts.Period),
		Radius2:        ellX2,
		BoundaryMargin: math.Sqrt(ellX2),
	}
	if err := coord.Run(context.Background()); err != nil {
		return nil, err
	}

	merged := make(core.Labels, n)
	for _, w := range workers {
		labels := w.Labels()
		for j, p := range w.Particles() {
			merged[idToOriginal[p.ID]] = labels[j]
		}
	}

	compacted, _ := core.CompactLabels(merged, opts.HaloMinSize)

	return compacted, nil
}
