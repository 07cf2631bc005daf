package fof

import "github.com/haloforge/strux/core"

// Result is the output of SearchFullSet: the final 3D-or-6D-refined group
// labels plus the per-group velocity dispersion the 6D pass computed (or
// the zero value if refinement was skipped), for callers that seed the
// hierarchy's root level or carry dispersion forward into the
// substructure search.
type Result struct {
	Labels core.Labels

	// GroupVelDisp2 maps a 3D group id (the id before 6D refinement
	// relabels the groups) to the mass-weighted, inflated velocity
	// variance computed for it during 6D refinement. Every 3D group gets
	// an entry when refinement runs; the map is empty when refinement is
	// disabled.
	GroupVelDisp2 map[int]float64
}
