package substructure

import "github.com/haloforge/strux/core"

// Result is the outcome of one SearchSubsetCore call: the subset-local
// group labels (1..NumGroups, contiguous) after every pass and
// significance filtering, plus bookkeeping recursion and the hierarchy
// manager need.
type Result struct {
	// Labels is indexed parallel to the indices slice SearchSubsetCore was
	// given, not the caller's original particle array.
	Labels core.Labels

	// Ell holds the final outlier score computed for each subset member,
	// aligned with Labels.
	Ell []float64

	// CoreMultiple reports whether the halo-core pass (if run) found two
	// or more cores, indicating multiple major progenitors.
	CoreMultiple bool
}

// expansionState is the per-pass scratch the iterative expansion stage
// shares across its sub-passes: nnID (Marks) is spec.md §5's per-particle
// mark array, reused across SearchCriterion calls within one pass; the
// thread-count cap and OMPSearchNum threshold gate whether a sub-pass's
// seed loop runs sequentially or fans out with errgroup.
type expansionState struct {
	Marks        []int
	OMPSearchNum int
	MaxWorkers   int
}

func newExpansionState(n int, ompSearchNum, maxWorkers int) *expansionState {
	return &expansionState{
		Marks:        make([]int, n),
		OMPSearchNum: ompSearchNum,
		MaxWorkers:   maxWorkers,
	}
}
