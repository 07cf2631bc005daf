package kdtree

import "github.com/haloforge/strux/core"

// FOF runs classical friends-of-friends over every particle in t: two
// particles are linked iff their squared separation is <= linkLen2. Groups
// smaller than minsize are dissolved. When order is true, the returned
// labels are compacted to contiguous ids ordered by descending group size
// (spec.md §4.1); otherwise ids reflect discovery order and need not be
// contiguous.
func (t *Tree) FOF(linkLen2 float64, minsize int, order bool) core.Labels {
	return t.FOFCriterion(NewPhysicalPredicate(linkLen2, t.Period), linkLen2, minsize, nil, order)
}

// FOFCriterion runs friends-of-friends using a general Predicate instead of
// a fixed link length. radius2 still bounds the tree traversal (the
// necessary condition every predicate kind shares: proximity in position
// space) so the predicate itself only needs to refine candidates the tree
// already narrowed down. filter, if non-nil, is consulted once per
// candidate particle before the predicate runs; FilterReject/FilterStop
// both exclude the candidate from linking (FilterStop additionally prunes
// the remainder of that particle's own search).
func (t *Tree) FOFCriterion(pred Predicate, radius2 float64, minsize int, filter Filter, order bool) core.Labels {
	n := t.Len()
	if n == 0 {
		return core.Labels{}
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		if filter != nil && filter(i) != FilterAccept {
			continue
		}
		p := &t.particles[i]
		t.rangeVisit(t.Root(), p.Pos, radius2, func(j int) bool {
			if j == i {
				return true
			}
			if filter != nil {
				switch filter(j) {
				case FilterReject:
					return true
				case FilterStop:
					return false
				}
			}
			if pred(p, &t.particles[j]) {
				uf.union(i, j)
			}

			return true
		})
	}

	raw := make(core.Labels, n)
	rootToID := make(map[int]int)
	nextID := 1
	for i := 0; i < n; i++ {
		r := uf.find(i)
		id, ok := rootToID[r]
		if !ok {
			id = nextID
			rootToID[r] = id
			nextID++
		}
		raw[i] = id
	}

	if minsize < 1 {
		minsize = 1
	}
	compacted, _ := core.CompactLabels(raw, minsize)
	if !order {
		// Discovery order: keep raw ids for surviving groups, just drop
		// members of dissolved groups (mirrors compacted's zeros) without
		// the size-descending renumber.
		counts := core.CountGroups(raw)
		out := make(core.Labels, n)
		seen := make(map[int]int)
		next := 1
		for i, g := range raw {
			if g == 0 || counts[g] < minsize {
				continue
			}
			id, ok := seen[g]
			if !ok {
				id = next
				seen[g] = id
				next++
			}
			out[i] = id
		}

		return out
	}

	return compacted
}

// SearchCriterion marks every particle within radius2 of the particle at
// centerIdx satisfying pred with referenceLabel, but only when its current
// mark is 0 (unmarked) or strictly greater than referenceLabel — the
// deterministic "smaller label wins" tie-break spec.md §4.1 requires. It
// returns the number of marks it changed.
//
// This is the primitive iterative expansion is built on: marks is a
// per-particle scratch array (spec.md's nnID) that the caller owns and
// reuses across many SearchCriterion calls within one expansion pass.
func (t *Tree) SearchCriterion(centerIdx int, radius2 float64, pred Predicate, filter Filter, referenceLabel int, marks []int) int {
	center := &t.particles[centerIdx]
	changed := 0
	t.rangeVisit(t.Root(), center.Pos, radius2, func(idx int) bool {
		if idx == centerIdx {
			return true
		}
		if filter != nil {
			switch filter(idx) {
			case FilterReject:
				return true
			case FilterStop:
				return false
			}
		}
		if !pred(center, &t.particles[idx]) {
			return true
		}
		if marks[idx] == 0 || marks[idx] > referenceLabel {
			marks[idx] = referenceLabel
			changed++
		}

		return true
	})

	return changed
}
