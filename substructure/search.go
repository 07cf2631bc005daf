package substructure

import (
	"math"

	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/density"
	"github.com/haloforge/strux/kdtree"
	"github.com/haloforge/strux/significance"
)

// SearchSubsetCore runs one full pass of spec.md §4.4 over
// particles[indices]: the primary outlier-probability FOF, iterative
// expansion (if opts.IterativeExpansion), the background large-structure
// pass, the halo-core pass, and significance-filtered termination.
//
// parentFilter, when non-nil, is consulted before any particle in the
// subset is allowed to seed or receive a link — the "check-sub" rule that
// stops linking through particles already claimed by a parent subgroup
// during recursion. Pass nil at the top level.
func SearchSubsetCore(particles []core.Particle, indices []int, opts config.Options, depth int, parentFilter kdtree.Filter) (*Result, error) {
	if len(indices) == 0 {
		return nil, ErrEmptySubset
	}
	if len(indices) < opts.MinSubSize {
		return nil, ErrSubsetTooSmall
	}

	sub := make([]core.Particle, len(indices))
	idToPos := make(map[int64]int, len(indices))
	for j, idx := range indices {
		sub[j] = particles[idx]
		idToPos[particles[idx].ID] = j
	}

	est, err := density.Build(sub, allIndices(len(sub)), opts.NCellFac, opts.MinCellSize)
	if err != nil {
		return nil, err
	}
	est.Estimate()
	sub = est.Particles()

	tree, err := kdtree.New(sub, opts.BucketSize, opts.Period)
	if err != nil {
		return nil, err
	}

	ellX2 := math.Pow(opts.EllXScale*opts.EllPhys, 2)
	ellV2 := math.Pow(opts.EllVScale*opts.EllVel, 2)
	pred := kdtree.NewStreamProbPredicate(kdtree.StreamProbParams{
		EllX2:        ellX2,
		EllV2:        ellV2,
		VRatio:       opts.VRatio,
		CosThetaOpen: opts.ThetaOpen,
		EllThreshold: opts.EllThreshold,
		Period:       opts.Period,
	})

	labels := tree.FOFCriterion(pred, ellX2, 1, parentFilter, false)

	if opts.IterativeExpansion && labels.NumGroups() > 0 {
		labels = expand(tree, labels, opts, ellX2, ellV2, parentFilter)
	}

	if shouldRunBackground(len(sub), opts) {
		labels = mergeBackgroundPass(tree, labels, opts, parentFilter)
	}

	var coreMultiple bool
	if opts.HaloCoreSearch != config.HaloCoreOff && isCoreSearchDepth(depth) {
		labels, coreMultiple = haloCorePass(tree, labels, opts, parentFilter)
	}

	labels, ell := terminate(tree.Particles(), labels, opts)

	// Splice back from tree-traversal order (kdtree.New and density.Build
	// both reorder particles in place) to the caller's indices order.
	outLabels := make(core.Labels, len(indices))
	outEll := make([]float64, len(indices))
	for j, p := range tree.Particles() {
		pos, ok := idToPos[p.ID]
		if !ok {
			continue
		}
		outLabels[pos] = labels[j]
		outEll[pos] = ell[j]
	}

	return &Result{Labels: outLabels, Ell: outEll, CoreMultiple: coreMultiple}, nil
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

// isCoreSearchDepth reports whether depth is "the field or first-subhalo
// depth" spec.md §4.4 restricts the halo-core pass to.
func isCoreSearchDepth(depth int) bool {
	return depth <= 1
}

func shouldRunBackground(n int, opts config.Options) bool {
	return opts.NCell > 0 && n >= 4*opts.MinCellSize
}

// mergeBackgroundPass implements spec.md §4.4's background large-structure
// pass: rebuild with a coarser grid, re-estimate outliers, run a 6D
// background-up FOF with minsize=0.2*Ncell, and merge any resulting groups
// into labels via the same inter-group merger machinery expand() uses.
func mergeBackgroundPass(tree *kdtree.Tree, labels core.Labels, opts config.Options, filter kdtree.Filter) core.Labels {
	particles := tree.Particles()
	coarseFac := opts.NCellFac * 4
	est, err := density.Build(particles, allIndices(len(particles)), coarseFac, opts.MinCellSize)
	if err != nil {
		return labels
	}
	est.Estimate()

	bgTree, err := kdtree.New(est.Particles(), opts.BucketSize, opts.Period)
	if err != nil {
		return labels
	}

	ellX2 := math.Pow(opts.EllXScale*opts.EllPhys*opts.EllXFac, 2)
	ellV2 := math.Pow(opts.EllVScale*opts.EllVel*opts.VFac, 2)
	minSize := int(0.2 * float64(opts.NCell))
	if minSize < 1 {
		minSize = 1
	}

	var bgLabels core.Labels
	if opts.FOFBGType == config.FOFBG6D {
		bgLabels = bgTree.FOFCriterion(kdtree.NewBackgroundUpPredicate(ellX2, ellV2, opts.Period), ellX2, minSize, filter, false)
	} else {
		bgLabels = bgTree.FOFCriterion(kdtree.NewPhysicalPredicate(ellX2, opts.Period), ellX2, minSize, filter, false)
	}

	return mergeLabelSets(tree.Particles(), labels, bgTree.Particles(), bgLabels, opts.FMergeBG)
}

// mergeLabelSets folds candidate (built over its own, possibly reordered,
// particle slice) into base: any candidate group overlapping fewer than
// one ungrouped/own-group particle is dropped; otherwise its members are
// absorbed, preferring to extend an existing base group when the overlap
// is non-trivial, or creating a new one when the candidate group is
// mostly ungrouped particles.
func mergeLabelSets(baseParticles []core.Particle, base core.Labels, candParticles []core.Particle, cand core.Labels, fMerge float64) core.Labels {
	idToBaseIdx := make(map[int64]int, len(baseParticles))
	for i, p := range baseParticles {
		idToBaseIdx[p.ID] = i
	}

	out := append(core.Labels(nil), base...)
	nextID := out.NumGroups() + 1

	byCandGroup := make(map[int][]int)
	for j, g := range cand {
		if g > 0 {
			byCandGroup[g] = append(byCandGroup[g], j)
		}
	}

	for _, members := range byCandGroup {
		overlap := make(map[int]int)
		baseIdxs := make([]int, 0, len(members))
		for _, j := range members {
			bi, ok := idToBaseIdx[candParticles[j].ID]
			if !ok {
				continue
			}
			baseIdxs = append(baseIdxs, bi)
			overlap[out[bi]]++
		}

		bestGroup, bestCount := 0, 0
		for g, c := range overlap {
			if g > 0 && c > bestCount {
				bestGroup, bestCount = g, c
			}
		}

		if bestGroup != 0 && float64(bestCount) > fMerge*float64(len(baseIdxs)) {
			for _, bi := range baseIdxs {
				out[bi] = bestGroup
			}

			continue
		}

		for _, bi := range baseIdxs {
			if out[bi] == 0 {
				out[bi] = nextID
			}
		}
		nextID++
	}

	return out
}

// terminate implements spec.md §4.4's termination step: rebuild group
// sizes, dissolve groups below opts.MinSize, compact ids, then run
// significance.CheckSignificance per surviving group, dissolving and
// re-compacting any that fail.
func terminate(particles []core.Particle, labels core.Labels, opts config.Options) (core.Labels, []float64) {
	compacted, _ := core.CompactLabels(labels, opts.MinSize)

	ell := make([]float64, len(particles))
	for i := range particles {
		ell[i] = particles[i].Potential
	}

	byGroup := make(map[int][]int)
	for i, g := range compacted {
		if g > 0 {
			byGroup[g] = append(byGroup[g], i)
		}
	}

	final := append(core.Labels(nil), compacted...)
	for _, members := range byGroup {
		groupEll := make([]float64, len(members))
		for i, idx := range members {
			groupEll[i] = ell[idx]
		}
		result := significance.CheckSignificance(groupEll, opts.EllThreshold, opts.SigLevel, opts.MinSize)
		if !result.Significant {
			for _, idx := range members {
				final[idx] = 0
			}

			continue
		}
		kept := make(map[int]bool, len(result.Keep))
		for _, k := range result.Keep {
			kept[k] = true
		}
		for i, idx := range members {
			if !kept[i] {
				final[idx] = 0
			}
		}
	}

	final, _ = core.CompactLabels(final, opts.MinSize)

	return final, ell
}
