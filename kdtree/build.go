package kdtree

import (
	"sort"

	"github.com/haloforge/strux/core"
)

// New builds a balanced k-d tree over particles, splitting on the
// longest-extent axis at each level and stopping when a node holds at most
// bucket particles. particles is reordered in place; its backing array is
// shared with the caller, so any slice aliasing the same array observes the
// new order too — this mirrors spec.md §4's requirement that FOF-family
// passes see a contiguous per-group layout after a search.
//
// An empty particles slice yields a valid, empty Tree (spec.md §4.8: "tree
// construction on empty input: the tree is still valid and returns empty
// searches").
func New(particles []core.Particle, bucket int, period float64) (*Tree, error) {
	if bucket <= 0 {
		return nil, ErrBucketSize
	}

	t := &Tree{particles: particles, bucket: bucket, Period: period}
	if len(particles) == 0 {
		return t, nil
	}

	t.build(0, len(particles))

	return t, nil
}

// build recursively partitions particles[lo:hi], appending nodes to
// t.nodes and returning the index of the node it created.
//
// Complexity: O(N log^2 N) time (each level re-sorts its span to find the
// exact median on the chosen axis), O(N) space. A production build would
// use a linear-time selection (quickselect); sort.Slice is used here for
// straightforward correctness.
func (t *Tree) build(lo, hi int) int {
	minB, maxB := t.bounds(lo, hi)
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{Min: minB, Max: maxB})

	if hi-lo <= t.bucket {
		t.nodes[idx].Left = -1
		t.nodes[idx].Right = -1
		t.nodes[idx].Lo = lo
		t.nodes[idx].Hi = hi

		return idx
	}

	axis := longestAxis(minB, maxB)
	sort.Slice(t.particles[lo:hi], func(i, j int) bool {
		return t.particles[lo+i].Pos[axis] < t.particles[lo+j].Pos[axis]
	})
	mid := lo + (hi-lo)/2
	splitVal := t.particles[mid].Pos[axis]

	t.nodes[idx].SplitAxis = axis
	t.nodes[idx].SplitVal = splitVal

	left := t.build(lo, mid)
	right := t.build(mid, hi)
	t.nodes[idx].Left = left
	t.nodes[idx].Right = right

	return idx
}

func (t *Tree) bounds(lo, hi int) (core.Vec3, core.Vec3) {
	min := t.particles[lo].Pos
	max := t.particles[lo].Pos
	for i := lo + 1; i < hi; i++ {
		p := t.particles[i].Pos
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			}
			if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}

	return min, max
}

func longestAxis(min, max core.Vec3) int {
	best, bestExtent := 0, max[0]-min[0]
	for a := 1; a < 3; a++ {
		if ext := max[a] - min[a]; ext > bestExtent {
			best, bestExtent = a, ext
		}
	}

	return best
}
