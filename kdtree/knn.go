package kdtree

import (
	"container/heap"

	"github.com/haloforge/strux/core"
)

// FindNearest returns the k nearest particle indices to pos and their
// squared distances, nearest first. An empty tree returns (nil, nil, nil).
// Ties (equal squared distance) are broken by ascending particle ID for
// determinism, mirroring spec.md §4.4's "ties go to the first encountered
// neighbor (deterministic by id)" rule used elsewhere in the pipeline.
func (t *Tree) FindNearest(pos core.Vec3, k int) ([]int, []float64, error) {
	if k <= 0 {
		return nil, nil, ErrInvalidK
	}
	if t.Len() == 0 {
		return nil, nil, nil
	}

	h := &neighborHeap{}
	heap.Init(h)
	t.knnVisit(t.Root(), pos, k, h)

	n := h.Len()
	ids := make([]int, n)
	dist2 := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		top := heap.Pop(h).([2]float64)
		ids[i] = int(top[0])
		dist2[i] = top[1]
	}
	stableSortByDistThenID(ids, dist2, t.particles)

	return ids, dist2, nil
}

func (t *Tree) knnVisit(nodeIdx int, pos core.Vec3, k int, h *neighborHeap) {
	if nodeIdx == -1 {
		return
	}
	n := &t.nodes[nodeIdx]
	if h.Len() == k {
		worst := h.dist2[0]
		if boxDist2(pos, n.Min, n.Max, t.Period) > worst {
			return
		}
	}
	if n.IsLeaf() {
		for i := n.Lo; i < n.Hi; i++ {
			d := Dist2(pos, t.particles[i].Pos, t.Period)
			if h.Len() < k {
				heap.Push(h, [2]float64{float64(i), d})
			} else if d < h.dist2[0] {
				heap.Pop(h)
				heap.Push(h, [2]float64{float64(i), d})
			}
		}

		return
	}
	// Visit the nearer child first: it's more likely to tighten the bound
	// before we evaluate the farther child.
	first, second := n.Left, n.Right
	if pos[n.SplitAxis] > n.SplitVal {
		first, second = second, first
	}
	t.knnVisit(first, pos, k, h)
	t.knnVisit(second, pos, k, h)
}

// stableSortByDistThenID sorts the k results ascending by distance, with
// ties broken by particle ID. Called once on a small (size-k) slice, so a
// simple insertion sort keeps the code straightforward.
func stableSortByDistThenID(ids []int, dist2 []float64, particles []core.Particle) {
	for i := 1; i < len(ids); i++ {
		j := i
		for j > 0 && less(dist2[j], particles[ids[j]].ID, dist2[j-1], particles[ids[j-1]].ID) {
			ids[j], ids[j-1] = ids[j-1], ids[j]
			dist2[j], dist2[j-1] = dist2[j-1], dist2[j]
			j--
		}
	}
}

func less(d1 float64, id1 int64, d2 float64, id2 int64) bool {
	if d1 != d2 {
		return d1 < d2
	}

	return id1 < id2
}
