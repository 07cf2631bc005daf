package baryon

import (
	"math"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
)

// Associate implements spec.md §4.7: for every baryon particle, find the K
// nearest grouped dark-matter particles, compute the phase-space distance
// D² = Σ(Δx²/ℓx² + Δv²/ℓv²) + U/ℓv² against each neighbor passing the 6D
// predicate, and assign the baryon to the group of its minimum-D² match.
// currentAssignment, if non-nil, carries each baryon's pre-existing group
// (all-particle-FOF mode). A baryon with no matching neighbor keeps its
// current group in every mode. When params.AllParticleMode is set, a
// matched baryon that already has a group moves only to a smaller group;
// otherwise the match replaces the current group.
func Associate(darkParticles []core.Particle, pfofDM core.Labels, baryonParticles []core.Particle, currentAssignment core.Labels, params Params) (core.Labels, map[int]*GroupBaryonicSummary, error) {
	groupedIdx := make([]int, 0, len(darkParticles))
	for i, g := range pfofDM {
		if g > 0 {
			groupedIdx = append(groupedIdx, i)
		}
	}
	if len(groupedIdx) == 0 {
		return nil, nil, ErrNoDarkMatterGroups
	}

	grouped := make([]core.Particle, len(groupedIdx))
	idToGroup := make(map[int64]int, len(groupedIdx))
	for j, i := range groupedIdx {
		grouped[j] = darkParticles[i]
		idToGroup[darkParticles[i].ID] = pfofDM[i]
	}

	numInGroup := core.NumInGroup(pfofDM)

	tree, err := kdtree.New(grouped, maxInt(1, minInt(len(grouped), 32)), params.Period)
	if err != nil {
		return nil, nil, err
	}
	// kdtree.New reorders grouped in place; recover each reordered slot's
	// group id by ID, which survives reordering unchanged.
	reordered := tree.Particles()
	groupOfFinal := make([]int, len(reordered))
	for j, p := range reordered {
		groupOfFinal[j] = idToGroup[p.ID]
	}

	ellX2 := params.EllX * params.EllX
	ellV2 := params.EllV * params.EllV

	assigned := make(core.Labels, len(baryonParticles))
	summary := make(map[int]*GroupBaryonicSummary)

	k := params.K
	if k < 1 {
		k = 1
	}

	for i := range baryonParticles {
		b := &baryonParticles[i]
		nbrIdx, _, err := tree.FindNearest(b.Pos, k)
		if err != nil {
			return nil, nil, err
		}

		bestD2 := math.Inf(1)
		bestGroup := 0
		for _, j := range nbrIdx {
			nb := &reordered[j]
			dx2 := kdtree.Dist2(b.Pos, nb.Pos, params.Period)
			if dx2 > ellX2 {
				continue
			}
			dv2 := kdtree.Dist2(b.Vel, nb.Vel, 0)
			if dv2 > ellV2 {
				continue
			}
			d2 := dx2/ellX2 + dv2/ellV2 + b.U/ellV2
			if d2 < bestD2 {
				bestD2 = d2
				bestGroup = groupOfFinal[j]
			}
		}

		current := 0
		if currentAssignment != nil && i < len(currentAssignment) {
			current = currentAssignment[i]
		}

		switch {
		case bestGroup == 0:
			assigned[i] = current
		case params.AllParticleMode && current != 0:
			if numInGroup[bestGroup] < numInGroup[current] {
				assigned[i] = bestGroup
			} else {
				assigned[i] = current
			}
		default:
			assigned[i] = bestGroup
		}

		if assigned[i] == 0 {
			continue
		}
		s, ok := summary[assigned[i]]
		if !ok {
			s = &GroupBaryonicSummary{}
			summary[assigned[i]] = s
		}
		switch b.Type {
		case core.Gas:
			s.GasMass += b.Mass
			s.GasCount++
		case core.Star:
			s.StarMass += b.Mass
			s.StarCount++
		}
	}

	for _, i := range groupedIdx {
		g := pfofDM[i]
		s, ok := summary[g]
		if !ok {
			s = &GroupBaryonicSummary{}
			summary[g] = s
		}
		s.DarkMass += darkParticles[i].Mass
	}

	return assigned, summary, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
