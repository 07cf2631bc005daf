package kdtree

import "github.com/haloforge/strux/core"

// wrapDelta returns the minimum-image signed separation along one axis of
// length period (period<=0 disables wrap and returns d unchanged).
func wrapDelta(d, period float64) float64 {
	if period <= 0 {
		return d
	}
	half := period / 2
	for d > half {
		d -= period
	}
	for d < -half {
		d += period
	}

	return d
}

// Dist2 returns the squared Euclidean distance between a and b, applying
// minimum-image periodic wrap on each axis when period>0.
func Dist2(a, b core.Vec3, period float64) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := wrapDelta(a[i]-b[i], period)
		sum += d * d
	}

	return sum
}

// boxDist2 returns the minimum possible squared distance from pos to any
// point inside [min,max], applying periodic wrap per axis. It underlies the
// k-d tree pruning test: a subtree can be skipped once boxDist2 exceeds the
// search radius.
func boxDist2(pos, min, max core.Vec3, period float64) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		lo, hi := min[i], max[i]
		v := pos[i]
		var d float64
		switch {
		case v < lo:
			d = lo - v
		case v > hi:
			d = v - hi
		default:
			d = 0
		}
		if period > 0 && d > 0 {
			// The box may also be reachable by wrapping the other way around
			// the box: compare against the periodic image of the gap.
			wrapped := period - d
			if wrapped < d {
				d = wrapped
			}
		}
		sum += d * d
	}

	return sum
}

// Wrap shifts every coordinate of p into [0,period) on each periodic axis.
// Non-periodic axes (period<=0) are left untouched.
func Wrap(p core.Vec3, period float64) core.Vec3 {
	if period <= 0 {
		return p
	}
	out := p
	for i := 0; i < 3; i++ {
		for out[i] < 0 {
			out[i] += period
		}
		for out[i] >= period {
			out[i] -= period
		}
	}

	return out
}

// ShiftToReference shifts every particle's position by the minimum-image
// delta toward ref, so downstream centroid/profile computations never see
// a position straddling the periodic boundary. This implements spec.md
// §4.2 step 6: "within each group, shift particles so distances to the
// group's representative never exceed half the period".
func ShiftToReference(particles []core.Particle, indices []int, ref core.Vec3, period float64) {
	if period <= 0 {
		return
	}
	for _, i := range indices {
		p := &particles[i]
		for a := 0; a < 3; a++ {
			d := wrapDelta(p.Pos[a]-ref[a], period)
			p.Pos[a] = ref[a] + d
		}
	}
}
