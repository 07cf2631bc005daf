package baryon

// GroupBaryonicSummary aggregates the baryonic content associated with one
// dark-matter group, supplementing the core halo catalog with the
// gas/star bookkeeping the original pipeline carries alongside it
// (original_source/stf/analysis/baryons/baryoniccontent.h).
type GroupBaryonicSummary struct {
	DarkMass float64
	GasMass  float64
	StarMass float64
	GasCount int
	StarCount int
}

// Params configures Associate.
type Params struct {
	// K is the number of nearest grouped dark-matter particles to examine
	// per baryon (spec.md §4.7 step 1).
	K int

	// EllX is the physical link length used for halo FOF (ellhalophysfac *
	// ellphys); EllV is the velocity link length, conventionally
	// HaloVelDispScale scaled by 16 per spec.md §4.7 step 1.
	EllX float64
	EllV float64

	// Period is the periodic box length; <=0 disables periodic wrap.
	Period float64

	// AllParticleMode enables the substructure affinity rule (spec.md
	// §4.7 step 4): a baryon may only move to a group smaller than its
	// current one.
	AllParticleMode bool
}
