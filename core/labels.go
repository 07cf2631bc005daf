package core

import "sort"

// Labels is the group label array PFOF: Labels[i] is the group id of
// particle i, with 0 reserved as the "ungrouped" sentinel. It is parallel
// to the particle slice it was computed against.
type Labels []int

// NumGroups returns the number of distinct positive ids present in l.
// It assumes ids are already contiguous [1..n] (the postcondition every
// public FOF-family call guarantees); callers that cannot assume this
// should use CountGroups instead.
func (l Labels) NumGroups() int {
	max := 0
	for _, g := range l {
		if g > max {
			max = g
		}
	}

	return max
}

// CountGroups returns, for each distinct positive id in l, the number of
// particles carrying it — without assuming contiguity. Safe to call on
// labels mid-expansion, where some ids may have been merged away.
func CountGroups(l Labels) map[int]int {
	counts := make(map[int]int)
	for _, g := range l {
		if g > 0 {
			counts[g]++
		}
	}

	return counts
}

// NumInGroup returns a dense slice indexed by group id (index 0 unused)
// giving the particle count of each group in [1..NumGroups()].
//
// Complexity: O(N).
func NumInGroup(l Labels) []int {
	n := l.NumGroups()
	counts := make([]int, n+1)
	for _, g := range l {
		if g > 0 {
			counts[g]++
		}
	}

	return counts
}

// PGList returns, for each group id in [1..NumGroups()], the particle
// indices currently carrying that id, ordered by particle array position.
// Index 0 of the returned slice is always nil (group id 0 is "ungrouped").
//
// Complexity: O(N) time, O(N) space.
func PGList(l Labels) [][]int {
	numInGroup := NumInGroup(l)
	lists := make([][]int, len(numInGroup))
	for g, n := range numInGroup {
		if g > 0 && n > 0 {
			lists[g] = make([]int, 0, n)
		}
	}
	for i, g := range l {
		if g > 0 {
			lists[g] = append(lists[g], i)
		}
	}

	return lists
}

// Chains is the intrusive singly-linked group list described in spec.md §3:
// Head[p] and Next[p] are indexed by particle position; Tail[g] and Len[g]
// are indexed by group id. All group members p satisfy Head[p]==Head[q] for
// any other member q, and walking Next from Head[g]'s representative visits
// exactly Len[g] particles before reaching Tail[g].
//
// Chains are always rebuilt from Labels at the start of a phase that needs
// them and discarded at phase end; they are never serialized.
type Chains struct {
	Head []int // Head[p] = index of the group's head particle, or -1 if ungrouped
	Next []int // Next[p] = index of next particle in the same group, or -1 if last
	Tail []int // Tail[g] = index of the group's tail particle (index by group id)
	Len  []int // Len[g]  = number of particles in the group (index by group id)
}

// BuildChains constructs a fresh Chains from l. Group members are linked in
// particle-array order, so Head[g]'s chain visits particles in ascending
// array-index order.
//
// Complexity: O(N) time, O(N+G) space.
func BuildChains(l Labels) *Chains {
	n := l.NumGroups()
	c := &Chains{
		Head: make([]int, len(l)),
		Next: make([]int, len(l)),
		Tail: make([]int, n+1),
		Len:  make([]int, n+1),
	}
	for i := range c.Head {
		c.Head[i] = -1
		c.Next[i] = -1
	}
	for i := range c.Tail {
		c.Tail[i] = -1
	}
	headIdx := make([]int, n+1) // head particle index per group, -1 until seen
	for i := range headIdx {
		headIdx[i] = -1
	}
	for i, g := range l {
		if g <= 0 {
			continue
		}
		if headIdx[g] == -1 {
			headIdx[g] = i
			c.Tail[g] = i
		} else {
			c.Next[c.Tail[g]] = i
			c.Tail[g] = i
		}
		c.Head[i] = headIdx[g]
		c.Len[g]++
	}

	return c
}

// Append adds particle p to group g in O(1), updating Tail and Len and
// writing p's Head pointer. The caller is responsible for also setting
// l[p] = g; Chains never mutates Labels itself (spec.md §4.4: "a particle
// previously in group g cannot be stolen — only pfof==0 is writable").
func (c *Chains) Append(g, p int) {
	if c.Tail[g] == -1 {
		c.Head[p] = p
		c.Tail[g] = p
	} else {
		c.Next[c.Tail[g]] = p
		c.Head[p] = c.Head[c.Tail[g]]
		c.Tail[g] = p
	}
	c.Next[p] = -1
	c.Len[g]++
}

// CompactLabels renumbers the positive ids of l to be contiguous [1..n],
// ordered by descending group size with ties broken by the smallest member
// particle index (deterministic, per spec.md §5 "Ordering"). Groups with
// fewer than minsize particles are dissolved (their members reset to 0) and
// excluded from the renumbering.
//
// Returns the new label array and the number of surviving groups. The
// input l is not mutated.
func CompactLabels(l Labels, minsize int) (Labels, int) {
	pg := PGList(l)
	type groupInfo struct {
		oldID     int
		size      int
		firstIdx  int
	}
	var groups []groupInfo
	for g, members := range pg {
		if g == 0 || len(members) == 0 {
			continue
		}
		if len(members) < minsize {
			continue
		}
		groups = append(groups, groupInfo{oldID: g, size: len(members), firstIdx: members[0]})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].size != groups[j].size {
			return groups[i].size > groups[j].size
		}

		return groups[i].firstIdx < groups[j].firstIdx
	})

	remap := make(map[int]int, len(groups))
	for newID, gi := range groups {
		remap[gi.oldID] = newID + 1
	}

	out := make(Labels, len(l))
	for i, g := range l {
		if newID, ok := remap[g]; ok {
			out[i] = newID
		}
	}

	return out, len(groups)
}
