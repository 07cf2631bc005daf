package core_test

import (
	"testing"

	"github.com/haloforge/strux/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumInGroupAndPGList(t *testing.T) {
	l := core.Labels{1, 1, 2, 0, 2, 2, 1}
	numInGroup := core.NumInGroup(l)
	require.Equal(t, []int{0, 3, 3}, numInGroup)

	pg := core.PGList(l)
	assert.Equal(t, []int{0, 1, 6}, pg[1])
	assert.Equal(t, []int{2, 4, 5}, pg[2])
}

func TestBuildChainsRoundTrip(t *testing.T) {
	l := core.Labels{1, 1, 2, 0, 2, 2, 1}
	chains := core.BuildChains(l)
	require.NoError(t, core.ValidateLabels(l, chains))

	assert.Equal(t, 3, chains.Len[1])
	assert.Equal(t, 3, chains.Len[2])
	assert.Equal(t, 6, chains.Tail[1])
	assert.Equal(t, 5, chains.Tail[2])
}

func TestChainsAppendIsO1(t *testing.T) {
	l := core.Labels{1, 1, 0, 0}
	chains := core.BuildChains(l)
	l[2] = 1
	chains.Append(1, 2)
	assert.Equal(t, 3, chains.Len[1])
	assert.Equal(t, 2, chains.Tail[1])
	require.NoError(t, core.ValidateLabels(l, chains))
}

func TestCompactLabelsOrdersByDescendingSizeThenFirstIndex(t *testing.T) {
	// group 1 has 2 members, group 2 has 3 members -> group 2 becomes id 1.
	l := core.Labels{1, 2, 2, 1, 2}
	out, n := core.CompactLabels(l, 1)
	require.Equal(t, 2, n)
	assert.Equal(t, core.Labels{2, 1, 1, 2, 1}, out)
}

func TestCompactLabelsDissolvesBelowMinSize(t *testing.T) {
	l := core.Labels{1, 1, 2, 2, 2}
	out, n := core.CompactLabels(l, 3)
	require.Equal(t, 1, n)
	assert.Equal(t, core.Labels{0, 0, 1, 1, 1}, out)
}

func TestCompactLabelsEmptyInput(t *testing.T) {
	out, n := core.CompactLabels(core.Labels{}, 1)
	assert.Equal(t, 0, n)
	assert.Empty(t, out)
}
