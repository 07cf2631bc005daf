package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendLevelBuildsChain(t *testing.T) {
	m := NewManager()
	l0 := m.AppendLevel(0)
	l1 := m.AppendLevel(1)

	levels := m.Levels()
	require.Len(t, levels, 2)
	assert.Same(t, l0, levels[0])
	assert.Same(t, l1, levels[1])
}

func TestAddGroupRootHasNoParent(t *testing.T) {
	m := NewManager()
	l0 := m.AppendLevel(0)
	g := m.AddGroup(l0, 100, noParent, StructureTypeAt(0))

	assert.Equal(t, noParent, m.Parent(g))
	assert.Equal(t, g, m.Root(g))
	assert.Equal(t, StructureTypeAt(0), m.StyleTag(g))
	assert.Equal(t, 1, m.Label(g))
}

func TestAddGroupChildInheritsRoot(t *testing.T) {
	m := NewManager()
	l0 := m.AppendLevel(0)
	l1 := m.AppendLevel(1)

	root := m.AddGroup(l0, 100, noParent, StructureTypeAt(0))
	child := m.AddGroup(l1, 7, root, StructureTypeAt(1))
	grandchild := m.AddGroup(m.AppendLevel(2), 3, child, StructureTypeAt(2))

	assert.Equal(t, root, m.Root(child))
	assert.Equal(t, root, m.Root(grandchild))
	assert.Equal(t, child, m.Parent(grandchild))
}

func TestRemoveGroupCompactsAndRelabels(t *testing.T) {
	m := NewManager()
	l0 := m.AppendLevel(0)
	a := m.AddGroup(l0, 1, noParent, StructureTypeAt(0))
	b := m.AddGroup(l0, 2, noParent, StructureTypeAt(0))
	c := m.AddGroup(l0, 3, noParent, StructureTypeAt(0))

	require.Equal(t, 2, m.Label(b))
	require.Equal(t, 3, m.Label(c))

	m.RemoveGroup(l0, b)

	assert.False(t, m.Active(b))
	assert.True(t, m.Active(a))
	assert.True(t, m.Active(c))
	assert.Equal(t, 1, m.Label(a))
	assert.Equal(t, 2, m.Label(c))
	assert.Len(t, l0.Groups, 2)
}

func TestGetHierarchyAccumulatesDescendantCounts(t *testing.T) {
	m := NewManager()
	l0 := m.AppendLevel(0)
	l1 := m.AppendLevel(1)
	l2 := m.AppendLevel(2)

	root := m.AddGroup(l0, 100, noParent, StructureTypeAt(0))
	childA := m.AddGroup(l1, 10, root, StructureTypeAt(1))
	_ = m.AddGroup(l1, 20, root, StructureTypeAt(1))
	_ = m.AddGroup(l2, 1, childA, StructureTypeAt(2))

	h := m.GetHierarchy()
	require.Len(t, h.Handles, 4)

	idx := make(map[GroupHandle]int)
	for i, g := range h.Handles {
		idx[g] = i
	}

	// root has two direct children plus one grandchild below childA.
	assert.Equal(t, 3, h.NSub[idx[root]])
	assert.Equal(t, 1, h.NSub[idx[childA]])
	assert.Equal(t, -1, h.ParentGID[idx[root]])
	assert.Equal(t, idx[root], h.ParentGID[idx[childA]])
	assert.Equal(t, -1, h.UParentGID[idx[root]])
	assert.Equal(t, idx[root], h.UParentGID[idx[childA]])
}

func TestGetHierarchySkipsRemovedGroups(t *testing.T) {
	m := NewManager()
	l0 := m.AppendLevel(0)
	root := m.AddGroup(l0, 1, noParent, StructureTypeAt(0))
	dissolved := m.AddGroup(l0, 2, noParent, StructureTypeAt(0))
	m.RemoveGroup(l0, dissolved)

	h := m.GetHierarchy()
	assert.Len(t, h.Handles, 1)
	assert.Equal(t, root, h.Handles[0])
}

func TestStructureTypeCoreDiffersFromDepthZero(t *testing.T) {
	assert.NotEqual(t, StructureTypeAt(0), StructureTypeCore())
}
