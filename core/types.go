package core

// Vec3 is a 3D real-valued vector used for both position and velocity.
// strux never distinguishes position-space and velocity-space vectors at
// the type level; callers keep that distinction by field name (Pos/Vel).
type Vec3 [3]float64

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the scalar product v.w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Norm2 returns |v|^2.
func (v Vec3) Norm2() float64 {
	return v.Dot(v)
}

// ParticleType is a closed enumeration of particle species.
type ParticleType int

const (
	// Dark marks a collisionless dark-matter particle.
	Dark ParticleType = iota
	// Gas marks a baryonic gas particle (may carry internal energy).
	Gas
	// Star marks a baryonic star particle (may carry age/metallicity).
	Star
	// Other marks any particle type the pipeline does not specialize on.
	Other
)

// String renders the particle type for logging and test failure messages.
func (t ParticleType) String() string {
	switch t {
	case Dark:
		return "dark"
	case Gas:
		return "gas"
	case Star:
		return "star"
	default:
		return "other"
	}
}

// Particle is the atomic record the pipeline operates on.
//
// ID is a stable index into the original input snapshot; it is never
// rewritten and is the only field safe to use for position-invariant
// lookups after the particle array has been reordered.
//
// PID is scratch: phases repurpose it as a sort key, a provenance tag, or a
// temporary group tag. Nothing downstream may assume PID survives a phase
// boundary unless that phase's documentation says so.
//
// Potential is also scratch, used by density.Estimator to stash the
// per-particle outlier score (spec: "ℓ") between the estimator and the
// predicates that read it.
type Particle struct {
	ID   int64
	PID  int64
	Type ParticleType

	Pos Vec3
	Vel Vec3
	Mass float64

	// U is internal thermal energy (gas only; zero otherwise).
	U float64
	// Z is metallicity (gas/star only; zero otherwise).
	Z float64
	// Age is stellar age (star only; zero otherwise).
	Age float64

	// Potential is scratch storage for the outlier score (ℓ) or, later in
	// the pipeline, a binding-energy estimate. Owned by whichever phase is
	// currently running; never canonical.
	Potential float64
}
