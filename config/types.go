package config

// FOFBGType selects the background large-structure FOF mode (spec.md §6
// `fofbgtype`).
type FOFBGType int

const (
	// FOFBG3DOnly runs only the 3D physical background pass.
	FOFBG3DOnly FOFBGType = iota
	// FOFBG6D runs the 6D phase-space background-up pass.
	FOFBG6D
)

// FOFType selects the substructure-search predicate family (spec.md §6
// `foftype`).
type FOFType int

const (
	// StreamProb is the plain stream-with-probability predicate.
	StreamProb FOFType = iota
	// StreamProbNN adds a kNN pre-filter before the predicate.
	StreamProbNN
	// StreamProbNNLX further restricts the kNN candidates by link length.
	StreamProbNNLX
	// StreamProbNNNoDist drops the spatial term from the kNN pre-filter.
	StreamProbNNNoDist
	// SixDSubset runs a plain 6D FOF restricted to the outlier subset.
	SixDSubset
)

// HaloCoreSearchMode selects the halo-core pass behavior (spec.md §6
// `iHaloCoreSearch`).
type HaloCoreSearchMode int

const (
	// HaloCoreOff disables the halo-core pass entirely.
	HaloCoreOff HaloCoreSearchMode = iota
	// HaloCoreDetectOnly runs the pass and records multi-core status but
	// does not assign unaffiliated particles to a core.
	HaloCoreDetectOnly
	// HaloCoreDetectAndAssign additionally assigns every unassigned halo
	// particle to its nearest core via kNN.
	HaloCoreDetectAndAssign
)

// BaryonSearchMode selects how baryon particles participate in the FOF
// pass (spec.md §6 `iBaryonSearch`).
type BaryonSearchMode int

const (
	// BaryonSearchOff disables baryon association.
	BaryonSearchOff BaryonSearchMode = iota
	// BaryonSearchSeparate associates baryons to dark-matter groups after
	// the dark-matter-only FOF pass has finished (§4.7).
	BaryonSearchSeparate
	// BaryonSearchAllParticle pre-clusters baryons alongside dark matter,
	// then re-enters substructure search once baryon-to-group
	// reassignment is resolved (spec.md §9 "type-subset sorting").
	BaryonSearchAllParticle
)

// PartSearchType selects which particle types participate in neighbor
// lookups during FOF (spec.md §6 `partsearchtype`).
type PartSearchType int

const (
	// SearchDMOnly restricts neighbor lookups to dark-matter particles.
	SearchDMOnly PartSearchType = iota
	// SearchAll allows every particle type to participate.
	SearchAll
)

// Option configures Options via functional arguments, mirroring
// bfs.Option/tsp.Options: invalid values are recorded and surfaced by
// Validate rather than panicking at option-application time.
type Option func(*Options)

// Options is the single configuration surface for the full pipeline; it
// covers every key in spec.md §6's configuration table as a typed field.
// Its zero value is not meaningful — use DefaultOptions and override.
type Options struct {
	// --- 3D/6D FOF link lengths ---
	EllPhys        float64 `yaml:"ellphys"`        // base physical link length
	EllXScale      float64 `yaml:"ellxscale"`       // spatial link-length multiplier
	EllHaloPhysFac float64 `yaml:"ellhalophysfac"`  // halo-pass link-length multiplier
	EllVScale      float64 `yaml:"ellvscale"`       // velocity link-length multiplier
	EllVel         float64 `yaml:"ellvel"`          // base velocity link length

	// --- stream-with-probability predicate ---
	VRatio       float64 `yaml:"Vratio"`
	ThetaOpen    float64 `yaml:"thetaopen"` // as a cosine
	EllThreshold float64 `yaml:"ellthreshold"`

	// --- expansion-pass tolerance widenings ---
	EllXFac  float64 `yaml:"ellxfac"`
	VFac     float64 `yaml:"vfac"`
	ThetaFac float64 `yaml:"thetafac"`
	EllFac   float64 `yaml:"ellfac"` // dual use: near-cell-size recovery AND significance, per spec.md §6

	// --- merger fractions ---
	FMerge          float64 `yaml:"fmerge"`
	FMergeBG        float64 `yaml:"fmergebg"`
	HaloMergerRatio float64 `yaml:"HaloMergerRatio"`

	// --- size floors ---
	MinSize     int `yaml:"MinSize"`     // substructure minimum size
	HaloMinSize int `yaml:"HaloMinSize"` // field-halo minimum size
	MinSubSize  int `yaml:"MINSUBSIZE"`
	MinCellSize int `yaml:"MINCELLSIZE"`

	// --- halo-core search ---
	HaloCoreXFac float64 `yaml:"halocorexfac"`
	HaloCoreVFac float64 `yaml:"halocorevfac"`
	HaloCoreNFac float64 `yaml:"halocorenfac"`

	// --- grid/tree sizing ---
	NCell      int     `yaml:"Ncell"`
	NCellFac   float64 `yaml:"Ncellfac"`
	BucketSize int     `yaml:"Bsize"`

	// --- mode selectors ---
	// HaloSixDRefinement enables the 6D phase-space refinement pass over
	// each 3D halo group (spec.md §4.2 step 4).
	HaloSixDRefinement bool               `yaml:"isixdrefinement"`
	FOFBGType          FOFBGType          `yaml:"fofbgtype"`
	FOFType            FOFType            `yaml:"foftype"`
	IterativeExpansion bool               `yaml:"iiterflag"`
	HaloCoreSearch     HaloCoreSearchMode `yaml:"iHaloCoreSearch"`
	BaryonSearch       BaryonSearchMode   `yaml:"iBaryonSearch"`
	PartSearchType     PartSearchType     `yaml:"partsearchtype"`

	// --- pipeline toggles ---
	SingleHalo    bool `yaml:"iSingleHalo"`
	BoundHalos    bool `yaml:"iBoundHalos"`
	UnbindFlag    bool `yaml:"unbindflag"`
	InclusiveHalo bool `yaml:"iInclusiveHalo"`

	// Period is the periodic box length; <=0 means non-periodic (spec.md
	// §6 `p`).
	Period float64 `yaml:"p"`

	// SigLevel is the significance threshold β_sig (spec.md §6
	// `siglevel`).
	SigLevel float64 `yaml:"siglevel"`

	// MaxWorkers bounds intra-worker fork-join parallelism; <=0 defaults
	// to runtime.GOMAXPROCS(0) (SPEC_FULL.md §7).
	MaxWorkers int `yaml:"maxworkers"`

	// OMPSearchNum is the workload threshold above which the nnID mark
	// array is allocated per-thread and reduced, rather than shared
	// (spec.md §5).
	OMPSearchNum int `yaml:"ompsearchnum"`

	// internal error recorded during option parsing; surfaced by Validate.
	err error `yaml:"-"`
}
