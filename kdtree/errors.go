package kdtree

import "errors"

// Sentinel errors for spatial-index construction and queries.
var (
	// ErrBucketSize indicates a non-positive leaf bucket capacity.
	ErrBucketSize = errors.New("kdtree: bucket size must be positive")

	// ErrEmptyTree indicates a query was issued against a tree with no particles.
	// Queries degrade gracefully (empty result, nil error); this sentinel is
	// surfaced only where the caller explicitly asked to distinguish the case.
	ErrEmptyTree = errors.New("kdtree: tree has no particles")

	// ErrInvalidK indicates FindNearest was asked for k<=0 neighbors.
	ErrInvalidK = errors.New("kdtree: k must be positive")

	// ErrIndexOutOfRange indicates a particle index outside [0, N).
	ErrIndexOutOfRange = errors.New("kdtree: particle index out of range")

	// ErrNilPredicate indicates FOFCriterion was called with a nil Predicate.
	ErrNilPredicate = errors.New("kdtree: predicate must not be nil")
)
