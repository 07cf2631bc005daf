package kdtree

import "github.com/haloforge/strux/core"

// Node is one node of the k-d tree: a bounding box, the axis and value it
// was split on, and either two child indices (internal node) or a
// contiguous particle-array range (leaf, Left==Right==-1).
type Node struct {
	Min, Max core.Vec3 // axis-aligned bounding box of this node's particles

	SplitAxis int     // 0,1,2 for x,y,z; unused on leaves
	SplitVal  float64 // unused on leaves

	Left, Right int // child node indices into Tree.nodes, or -1 for a leaf

	Lo, Hi int // [Lo,Hi) range into Tree.particles for a leaf; zero on internal nodes
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.Left == -1 && n.Right == -1
}

// Tree is a balanced k-d tree over an external particle slice. It owns no
// particle memory: Build permutes the caller's slice in place so that each
// leaf's particles occupy a contiguous range, matching spec.md §4 ("Leaves
// store a contiguous range of the particle array").
type Tree struct {
	particles []core.Particle
	nodes     []Node
	bucket    int

	// Period is the periodic box length per axis; Period<=0 disables
	// periodic wrap (spec.md §6 config key `p`).
	Period float64
}

// Len returns the number of particles indexed by t.
func (t *Tree) Len() int {
	return len(t.particles)
}

// Particles returns the (possibly reordered) particle slice the tree
// indexes. Callers must not resize it; reordering within the existing
// length is safe only via Tree's own construction.
func (t *Tree) Particles() []core.Particle {
	return t.particles
}

// Root returns the index of the root node, or -1 if the tree is empty.
func (t *Tree) Root() int {
	if len(t.nodes) == 0 {
		return -1
	}

	return 0
}

// NodeAt returns the node stored at idx, as returned by Root or a node's
// own Left/Right fields. Callers outside the package use it to walk the
// tree directly (e.g. density.Build collecting per-leaf statistics).
func (t *Tree) NodeAt(idx int) *Node {
	return &t.nodes[idx]
}
