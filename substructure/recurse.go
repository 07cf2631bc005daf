package substructure

import (
	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/hierarchy"
	"github.com/haloforge/strux/kdtree"
)

// SearchSubSub implements spec.md §4.4's recursion: it runs
// SearchSubsetCore over particles[indices], registers every surviving
// group as a new hierarchy level under parent, and recurses into any
// group whose size exceeds opts.MinCellSize. In a periodic box the
// recursion runs on a *copy* of the particles whose group members are
// shifted by minimum image toward the group's first member, so the
// parent's positions are never mutated; no center-of-mass frame shift is
// applied, and a non-periodic recursion uses the particles unshifted. depth is the recursion depth
// passed through to SearchSubsetCore (0 = the halo itself).
//
// globalLabels is the caller's full-snapshot label array; SearchSubSub
// overwrites it at the positions named by indices with this level's
// subgroup ids (offset so they don't collide with sibling subsets), and
// leaves every particle not captured by a new subgroup at its current
// (parent-level) value — a dissolved or unbound child re-joins its
// parent group, per spec.md §4.4 "Recursion".
func SearchSubSub(particles []core.Particle, indices []int, globalLabels core.Labels, opts config.Options, depth int, mgr *hierarchy.Manager, level *hierarchy.StructureLevel, parent hierarchy.GroupHandle) error {
	result, err := SearchSubsetCore(particles, indices, opts, depth, nil)
	if err == ErrSubsetTooSmall || err == ErrEmptySubset {
		return nil
	}
	if err != nil {
		return err
	}

	numGroups := result.Labels.NumGroups()
	if numGroups == 0 {
		return nil
	}

	childLevel := mgr.AppendLevel(depth + 1)

	for g := 1; g <= numGroups; g++ {
		members := make([]int, 0)
		for j, lg := range result.Labels {
			if lg == g {
				members = append(members, indices[j])
			}
		}
		if len(members) == 0 {
			continue
		}

		head := members[0]
		handle := mgr.AddGroup(childLevel, head, parent, hierarchy.StructureTypeAt(depth+1))
		for _, idx := range members {
			globalLabels[idx] = int(handle) + 1 // handles are stable across later renumbering
		}

		if len(members) > opts.MinCellSize {
			if err := recurseIntoGroup(particles, members, globalLabels, opts, depth+1, mgr, childLevel, handle); err != nil {
				return err
			}
		}
	}

	return nil
}

// recurseIntoGroup, in a periodic box, copies the particles and shifts the
// group's members by minimum image toward its first member (so
// periodic-boundary-straddling groups resolve to compact coordinates for
// their own substructure search) before recursing, leaving the caller's
// particles slice untouched. Without a period it recurses directly.
func recurseIntoGroup(particles []core.Particle, members []int, globalLabels core.Labels, opts config.Options, depth int, mgr *hierarchy.Manager, level *hierarchy.StructureLevel, parent hierarchy.GroupHandle) error {
	if opts.Period <= 0 {
		return SearchSubSub(particles, members, globalLabels, opts, depth, mgr, level, parent)
	}

	shifted := append([]core.Particle(nil), particles...)
	ref := shifted[members[0]].Pos
	kdtree.ShiftToReference(shifted, members, ref, opts.Period)

	return SearchSubSub(shifted, members, globalLabels, opts, depth, mgr, level, parent)
}
