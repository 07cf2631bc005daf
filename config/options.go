package config

import "fmt"

// DefaultOptions returns an Options struct with conservative, widely-used
// VELOCIraptor-STF defaults:
//   - ellphys/ellvel based 3D+6D link lengths, 3D-only background pass
//     (NCell=10)
//   - stream-with-probability substructure search, iterative expansion on
//   - halo-core search off, baryon search off
//   - exclusive halo masses, non-periodic box
func DefaultOptions() Options {
	return Options{
		EllPhys:        1,
		EllXScale:      1,
		EllHaloPhysFac: 1,
		EllVScale:      1,
		EllVel:         1,

		VRatio:       1.25,
		ThetaOpen:    0.0,
		EllThreshold: 1.5,

		EllXFac:  1.25,
		VFac:     1.25,
		ThetaFac: 1.25,
		EllFac:   0.2,

		FMerge:          0.2,
		FMergeBG:        0.2,
		HaloMergerRatio: 0.2,

		MinSize:     20,
		HaloMinSize: 20,
		MinSubSize:  20,
		MinCellSize: 10,

		HaloCoreXFac: 0.5,
		HaloCoreVFac: 2,
		HaloCoreNFac: 0.1,

		NCell:      10,
		NCellFac:   0.01,
		BucketSize: 16,

		HaloSixDRefinement: true,
		FOFBGType:          FOFBG3DOnly,
		FOFType:            StreamProb,
		IterativeExpansion: true,
		HaloCoreSearch:     HaloCoreOff,
		BaryonSearch:       BaryonSearchOff,
		PartSearchType:     SearchDMOnly,

		SingleHalo:    false,
		BoundHalos:    false,
		UnbindFlag:    false,
		InclusiveHalo: false,

		Period: 0,

		SigLevel: 1.5,

		MaxWorkers:   0,
		OMPSearchNum: 50000,
	}
}

// Apply folds opts onto a copy of DefaultOptions and returns it, mirroring
// bfs's pattern of applying functional Options over a base value.
func Apply(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithEllPhys sets the base physical link length used to derive the 3D
// halo-pass link length.
func WithEllPhys(v float64) Option {
	return func(o *Options) {
		if v <= 0 {
			o.err = fmt.Errorf("%w: EllPhys must be positive (%g)", ErrInvalidOption, v)
			return
		}
		o.EllPhys = v
	}
}

// WithHaloCoreSearch sets the halo-core search mode.
func WithHaloCoreSearch(mode HaloCoreSearchMode) Option {
	return func(o *Options) {
		o.HaloCoreSearch = mode
	}
}

// WithBaryonSearch sets the baryon association mode and the particle
// types eligible for neighbor lookups.
func WithBaryonSearch(mode BaryonSearchMode, partType PartSearchType) Option {
	return func(o *Options) {
		o.BaryonSearch = mode
		o.PartSearchType = partType
	}
}

// WithPeriod sets the periodic box length; v<=0 disables periodic wrap.
func WithPeriod(v float64) Option {
	return func(o *Options) {
		o.Period = v
	}
}

// WithMinSizes sets the substructure and field-halo minimum group sizes.
func WithMinSizes(subMin, haloMin int) Option {
	return func(o *Options) {
		if subMin < 1 || haloMin < 1 {
			o.err = fmt.Errorf("%w: MinSize/HaloMinSize must be >= 1 (%d, %d)", ErrInvalidOption, subMin, haloMin)
			return
		}
		o.MinSize = subMin
		o.HaloMinSize = haloMin
	}
}

// WithIterativeExpansion enables or disables the iterative expansion pass
// (spec.md §6 `iiterflag`).
func WithIterativeExpansion(v bool) Option {
	return func(o *Options) {
		o.IterativeExpansion = v
	}
}

// WithInclusiveHalo selects inclusive (vs. exclusive) halo mass reporting
// (spec.md §9 open question, decided in SPEC_FULL.md §11).
func WithInclusiveHalo(v bool) Option {
	return func(o *Options) {
		o.InclusiveHalo = v
	}
}

// WithMaxWorkers bounds intra-worker fork-join parallelism.
func WithMaxWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxWorkers must be >= 0 (%d)", ErrInvalidOption, n)
			return
		}
		o.MaxWorkers = n
	}
}
