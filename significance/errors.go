package significance

import "errors"

// ErrEmptyGroup indicates CheckSignificance was called with zero members.
var ErrEmptyGroup = errors.New("significance: group is empty")
