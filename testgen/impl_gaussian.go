package testgen

import "github.com/haloforge/strux/core"

// GaussianBlob returns a Constructor producing n particles of the given
// type, isotropically Gaussian in both position (mean center, dispersion
// posSigma) and velocity (mean velCenter, dispersion velSigma).
func GaussianBlob(n int, typ core.ParticleType, center, velCenter core.Vec3, posSigma, velSigma float64) Constructor {
	return func(cfg *snapshotConfig) ([]core.Particle, error) {
		if n < 1 {
			return nil, ErrTooFewParticles
		}
		if posSigma < 0 || velSigma < 0 {
			return nil, ErrInvalidSigma
		}

		out := make([]core.Particle, n)
		for i := range out {
			out[i] = core.Particle{
				ID:   cfg.nextID,
				Type: typ,
				Mass: 1,
				Pos: core.Vec3{
					center[0] + cfg.rng.NormFloat64()*posSigma,
					center[1] + cfg.rng.NormFloat64()*posSigma,
					center[2] + cfg.rng.NormFloat64()*posSigma,
				},
				Vel: core.Vec3{
					velCenter[0] + cfg.rng.NormFloat64()*velSigma,
					velCenter[1] + cfg.rng.NormFloat64()*velSigma,
					velCenter[2] + cfg.rng.NormFloat64()*velSigma,
				},
			}
			cfg.nextID++
		}

		return out, nil
	}
}

// UniformBox returns a Constructor producing n particles uniformly
// distributed in [-halfWidth, halfWidth]³ around center, with Gaussian
// velocity dispersion velSigma — the "background" population used by the
// nested-substructure and significance-pruning scenarios.
func UniformBox(n int, typ core.ParticleType, center core.Vec3, halfWidth, velSigma float64) Constructor {
	return func(cfg *snapshotConfig) ([]core.Particle, error) {
		if n < 1 {
			return nil, ErrTooFewParticles
		}
		if halfWidth < 0 || velSigma < 0 {
			return nil, ErrInvalidSigma
		}

		out := make([]core.Particle, n)
		for i := range out {
			out[i] = core.Particle{
				ID:   cfg.nextID,
				Type: typ,
				Mass: 1,
				Pos: core.Vec3{
					center[0] + (cfg.rng.Float64()*2-1)*halfWidth,
					center[1] + (cfg.rng.Float64()*2-1)*halfWidth,
					center[2] + (cfg.rng.Float64()*2-1)*halfWidth,
				},
				Vel: core.Vec3{
					cfg.rng.NormFloat64() * velSigma,
					cfg.rng.NormFloat64() * velSigma,
					cfg.rng.NormFloat64() * velSigma,
				},
			}
			cfg.nextID++
		}

		return out, nil
	}
}
