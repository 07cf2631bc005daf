package kdtree

import (
	"math"

	"github.com/haloforge/strux/core"
)

// Predicate decides whether two particles are linked for FOFCriterion. Each
// constructor below returns a closure specialized to one predicate kind, so
// the inner FOF loop calls a monomorphic function value instead of
// dispatching through a shared interface (spec.md §9 design note: "avoid
// virtual dispatch in the inner loop by instantiating one engine per
// predicate kind at the call site").
type Predicate func(p, q *core.Particle) bool

// FilterResult is the outcome of a per-particle FOF filter hook.
type FilterResult int

const (
	// FilterAccept lets the particle participate in linking normally.
	FilterAccept FilterResult = iota
	// FilterReject excludes the particle from being a link target, but
	// traversal continues to other particles.
	FilterReject
	// FilterStop excludes the particle and signals the caller to prune the
	// remainder of the current search (used by the background-up predicate
	// to skip already-grouped particles without walking past them).
	FilterStop
)

// Filter is the per-particle admission hook used by FOFCriterion.
type Filter func(idx int) FilterResult

// NewPhysicalPredicate builds the plain 3D FOF predicate: link iff the
// squared separation is within ellX2 (already squared link length).
func NewPhysicalPredicate(ellX2, period float64) Predicate {
	return func(p, q *core.Particle) bool {
		return Dist2(p.Pos, q.Pos, period) <= ellX2
	}
}

// NewPhaseSpacePredicate builds the 6D FOF predicate: link iff the
// position separation is within ellX2 AND the velocity separation is
// within ellV2.
func NewPhaseSpacePredicate(ellX2, ellV2, period float64) Predicate {
	return func(p, q *core.Particle) bool {
		if Dist2(p.Pos, q.Pos, period) > ellX2 {
			return false
		}

		return Dist2(p.Vel, q.Vel, 0) <= ellV2
	}
}

// StreamProbParams parameterizes the stream-with-probability predicate
// (spec.md §4.4): spatial proximity AND velocity-ratio agreement AND
// angular alignment of velocity vectors AND at least one endpoint having
// an outlier score above EllThreshold.
type StreamProbParams struct {
	EllX2        float64 // squared spatial link length
	EllV2        float64 // squared velocity link length
	VRatio       float64 // max allowed |Δv|/ellV before rejecting on velocity magnitude
	CosThetaOpen float64 // minimum cosine of the angle between velocity vectors
	EllThreshold float64 // outlier-score admission cut
	Period       float64

	// AdmitSingleHighEll relaxes the admission rule from "both endpoints
	// could be tested" to "admit when either endpoint alone exceeds
	// EllThreshold" — the near-cell-size recovery sub-pass variant from
	// spec.md §4.4 step 2.
	AdmitSingleHighEll bool
}

// NewStreamProbPredicate builds the stream-with-probability predicate.
// Particle.Potential is read as the outlier score ℓ (set by density.Estimator).
func NewStreamProbPredicate(params StreamProbParams) Predicate {
	return func(p, q *core.Particle) bool {
		if Dist2(p.Pos, q.Pos, params.Period) > params.EllX2 {
			return false
		}
		dv2 := Dist2(p.Vel, q.Vel, 0)
		if dv2 > params.EllV2*params.VRatio*params.VRatio {
			return false
		}
		if params.CosThetaOpen > -1 {
			np := math.Sqrt(p.Vel.Norm2())
			nq := math.Sqrt(q.Vel.Norm2())
			if np > 0 && nq > 0 {
				cos := p.Vel.Dot(q.Vel) / (np * nq)
				if cos < params.CosThetaOpen {
					return false
				}
			}
		}

		if params.AdmitSingleHighEll {
			return p.Potential > params.EllThreshold || q.Potential > params.EllThreshold
		}

		return p.Potential > params.EllThreshold && q.Potential > params.EllThreshold
	}
}

// NewBackgroundUpPredicate builds the 6D background-up predicate used by
// the substructure searcher's "background large-structure pass" when
// FOFBGType is FOFBG6D: plain 6D phase-space linking, but
// particles rejected by filter (already grouped) are excluded via the
// Filter hook passed alongside this predicate to FOFCriterion, not by the
// predicate itself.
func NewBackgroundUpPredicate(ellX2, ellV2, period float64) Predicate {
	return NewPhaseSpacePredicate(ellX2, ellV2, period)
}
