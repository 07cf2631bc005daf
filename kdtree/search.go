package kdtree

import "github.com/haloforge/strux/core"

// rangeVisit calls visit(idx) for every particle index within radius2 of
// pos, pruning subtrees whose bounding box cannot contain any such
// particle. Both position of the box and the query point are compared
// through periodic wrap when t.Period>0, satisfying spec.md §4.1's "check
// all image shifts only when a bounding box straddles the boundary" via
// the boxDist2 minimum-image distance.
func (t *Tree) rangeVisit(nodeIdx int, pos core.Vec3, radius2 float64, visit func(idx int) bool) bool {
	if nodeIdx == -1 {
		return true
	}
	n := &t.nodes[nodeIdx]
	if boxDist2(pos, n.Min, n.Max, t.Period) > radius2 {
		return true
	}
	if n.IsLeaf() {
		for i := n.Lo; i < n.Hi; i++ {
			if Dist2(pos, t.particles[i].Pos, t.Period) <= radius2 {
				if !visit(i) {
					return false
				}
			}
		}

		return true
	}
	if !t.rangeVisit(n.Left, pos, radius2, visit) {
		return false
	}

	return t.rangeVisit(n.Right, pos, radius2, visit)
}

// RangeIndices returns the indices of every particle within radius of pos
// (radius given already squared), in tree-traversal order. An empty tree
// yields an empty, non-nil slice.
func (t *Tree) RangeIndices(pos core.Vec3, radius2 float64) []int {
	out := make([]int, 0, t.bucket)
	t.rangeVisit(t.Root(), pos, radius2, func(idx int) bool {
		out = append(out, idx)

		return true
	})

	return out
}

// neighborHeap is a bounded max-heap over (index, dist2) pairs, keeping the
// k smallest distances seen so far. Grounded on dijkstra.Dijkstra's use of
// container/heap for its priority frontier; here the ordering is reversed
// (max-heap) so the worst of the k current-best candidates sits at the
// root and can be evicted in O(log k) when a closer one arrives.
type neighborHeap struct {
	idx   []int
	dist2 []float64
}

func (h *neighborHeap) Len() int            { return len(h.idx) }
func (h *neighborHeap) Less(i, j int) bool  { return h.dist2[i] > h.dist2[j] }
func (h *neighborHeap) Swap(i, j int) {
	h.idx[i], h.idx[j] = h.idx[j], h.idx[i]
	h.dist2[i], h.dist2[j] = h.dist2[j], h.dist2[i]
}
func (h *neighborHeap) Push(x any) {
	p := x.([2]float64)
	h.idx = append(h.idx, int(p[0]))
	h.dist2 = append(h.dist2, p[1])
}
func (h *neighborHeap) Pop() any {
	n := len(h.idx)
	idx, d := h.idx[n-1], h.dist2[n-1]
	h.idx = h.idx[:n-1]
	h.dist2 = h.dist2[:n-1]

	return [2]float64{float64(idx), d}
}
