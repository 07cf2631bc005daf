package substructure

import "errors"

// ErrEmptySubset is returned when SearchSubsetCore is called with zero
// indices.
var ErrEmptySubset = errors.New("substructure: subset is empty")

// ErrSubsetTooSmall is returned when a subset has fewer members than
// opts.MinSubSize: the primary pass cannot run and the caller should treat
// the subset as a single unresolved group.
var ErrSubsetTooSmall = errors.New("substructure: subset below MinSubSize")
