package core_test

import (
	"testing"

	"github.com/haloforge/strux/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLabelsRejectsOutOfRange(t *testing.T) {
	l := core.Labels{1, 2, 5}
	err := core.ValidateLabels(l, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidGroupID)
}

func TestValidateLabelsAcceptsEmpty(t *testing.T) {
	require.NoError(t, core.ValidateLabels(core.Labels{}, nil))
}

func TestValidateLabelsDetectsBrokenChain(t *testing.T) {
	l := core.Labels{1, 1}
	chains := core.BuildChains(l)
	// Corrupt Len so the chain no longer matches.
	chains.Len[1] = 99
	err := core.ValidateLabels(l, chains)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBrokenChain)
}
