package substructure

import (
	"math"

	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
)

// haloCorePass implements spec.md §4.4's halo-core pass: a dedicated 6D
// FOF with a very tight spatial link length (HaloCoreXFac), tight velocity
// link length (HaloCoreVFac), and minimum size HaloCoreNFac*N, masking out
// particles already claimed by a substructure group. It reports whether
// two or more cores emerged (multiple major progenitors) and, in
// HaloCoreDetectAndAssign mode, assigns every unassigned particle to its
// nearest core by mass-weighted phase-space distance D²/m_core.
func haloCorePass(tree *kdtree.Tree, labels core.Labels, opts config.Options, parentFilter kdtree.Filter) (core.Labels, bool) {
	particles := tree.Particles()
	n := len(particles)

	alreadyGrouped := func(idx int) kdtree.FilterResult {
		if parentFilter != nil && parentFilter(idx) != kdtree.FilterAccept {
			return kdtree.FilterStop
		}
		if labels[idx] > 0 {
			return kdtree.FilterStop
		}

		return kdtree.FilterAccept
	}

	ellX2 := math.Pow(opts.EllXScale*opts.EllPhys*opts.HaloCoreXFac, 2)
	ellV2 := math.Pow(opts.EllVScale*opts.EllVel*opts.HaloCoreVFac, 2)
	minSize := int(opts.HaloCoreNFac * float64(n))
	if minSize < 1 {
		minSize = 1
	}

	coreLabels := tree.FOFCriterion(kdtree.NewPhaseSpacePredicate(ellX2, ellV2, opts.Period), ellX2, minSize, kdtree.Filter(alreadyGrouped), true)
	numCores := coreLabels.NumGroups()
	if numCores == 0 {
		return labels, false
	}

	out := append(core.Labels(nil), labels...)
	base := out.NumGroups()
	for i, c := range coreLabels {
		if c > 0 {
			out[i] = base + c
		}
	}

	if opts.HaloCoreSearch == config.HaloCoreDetectAndAssign {
		assignToNearestCore(particles, out, coreLabels, opts)
	}

	return out, numCores >= 2
}

// assignToNearestCore assigns every particle with no group in labels to
// the core (from coreLabels, already spliced into labels at base+c) whose
// tagged particles are closest in the mass-weighted phase-space metric
// D²/m_core; ties go to the first neighbor encountered, which — since
// particles are visited by ascending tree-particle index and IDs are
// assigned in input order — is deterministic by id.
func assignToNearestCore(particles []core.Particle, labels core.Labels, coreLabels core.Labels, opts config.Options) {
	coreMass := make(map[int]float64)
	var coreIdx []int
	for i, c := range coreLabels {
		if c == 0 {
			continue
		}
		coreMass[c] += particles[i].Mass
		coreIdx = append(coreIdx, i)
	}
	if len(coreIdx) == 0 {
		return
	}

	for i := range particles {
		if labels[i] != 0 {
			continue
		}
		bestD2 := math.Inf(1)
		bestCore := 0
		for _, j := range coreIdx {
			c := coreLabels[j]
			m := coreMass[c]
			if m <= 0 {
				continue
			}
			dx2 := kdtree.Dist2(particles[i].Pos, particles[j].Pos, opts.Period)
			dv2 := kdtree.Dist2(particles[i].Vel, particles[j].Vel, 0)
			d2 := (dx2 + dv2) / m
			if d2 < bestD2 {
				bestD2 = d2
				bestCore = labels[j]
			}
		}
		if bestCore != 0 {
			labels[i] = bestCore
		}
	}
}
