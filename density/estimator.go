package density

import (
	"math"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
)

// Cell is one leaf of the coarse grid: a contiguous range of particle
// indices (into Estimator.particles) sharing a bulk velocity and
// dispersion estimate.
type Cell struct {
	Indices  []int
	MeanVel  core.Vec3
	Disp     Matrix3 // mass-weighted 3x3 velocity-dispersion matrix
	Singular bool    // true if Disp could not be inverted (degenerate cell)
}

// Estimator builds and holds the coarse grid plus the per-particle outlier
// scores it derives from it.
type Estimator struct {
	particles        []core.Particle
	cells            []Cell
	cellOf           []int // particle index -> cell index
	resolvedOccupancy int

	// HaloVelDispScale is the fallback isotropic velocity-dispersion scale
	// used when a cell's Disp is singular (spec.md §7 "Numerical": "falling
	// back to the global HaloVelDispScale").
	HaloVelDispScale float64
}

// InflationFactor is the 1.25² inflation spec.md §4.2 step 4 applies to a
// group's velocity variance so the 6D link length catches outlying
// streams; exported for fof's 6D refinement. Build's per-cell dispersion is
// not inflated.
const InflationFactor = 1.25 * 1.25

// MinCellOccupancyFraction is the 25% floor spec.md §4.3 step 1 names:
// the target cell occupancy must let at least this fraction of the subset
// land in a single cell, or the occupancy is doubled.
const MinCellOccupancyFraction = 0.25

// Build partitions particles[indices] into a coarse grid with target cell
// occupancy ncellfac*N, clamped to at least minCellSize and doubled until
// it represents at least MinCellOccupancyFraction of N (spec.md §4.3 step
// 1). It also computes each cell's mean velocity and dispersion.
func Build(particles []core.Particle, indices []int, ncellfac float64, minCellSize int) (*Estimator, error) {
	n := len(indices)
	if n == 0 {
		return nil, ErrEmptySubset
	}

	subset := make([]core.Particle, n)
	for i, idx := range indices {
		subset[i] = particles[idx]
	}

	occupancy := int(ncellfac * float64(n))
	if occupancy < minCellSize {
		occupancy = minCellSize
	}
	if occupancy < 1 {
		occupancy = 1
	}
	for occupancy < n && float64(occupancy) < MinCellOccupancyFraction*float64(n) {
		occupancy *= 2
	}
	if occupancy > n {
		occupancy = n
	}

	tree, err := kdtree.New(subset, occupancy, 0)
	if err != nil {
		return nil, err
	}

	e := &Estimator{
		particles:         tree.Particles(),
		cellOf:            make([]int, n),
		resolvedOccupancy: occupancy,
		HaloVelDispScale:  globalVelDispScale(tree.Particles()),
	}
	e.collectCells(tree)

	return e, nil
}

// ResolvedCellSize reports the target occupancy Build converged on after
// any doubling, per SPEC_FULL.md §6.3.
func (e *Estimator) ResolvedCellSize() int {
	return e.resolvedOccupancy
}

// Particles returns the (tree-reordered) subset Estimator was built over.
func (e *Estimator) Particles() []core.Particle {
	return e.particles
}

func (e *Estimator) collectCells(tree *kdtree.Tree) {
	e.walkLeaves(tree, tree.Root())
}

func (e *Estimator) walkLeaves(tree *kdtree.Tree, nodeIdx int) {
	if nodeIdx == -1 {
		return
	}
	node := tree.NodeAt(nodeIdx)
	if !node.IsLeaf() {
		e.walkLeaves(tree, node.Left)
		e.walkLeaves(tree, node.Right)

		return
	}

	indices := make([]int, 0, node.Hi-node.Lo)
	for i := node.Lo; i < node.Hi; i++ {
		indices = append(indices, i)
	}
	cellIdx := len(e.cells)
	cell := e.buildCell(indices)
	e.cells = append(e.cells, cell)
	for _, i := range indices {
		e.cellOf[i] = cellIdx
	}
}

func (e *Estimator) buildCell(indices []int) Cell {
	var totalMass float64
	var meanVel core.Vec3
	for _, i := range indices {
		p := &e.particles[i]
		meanVel = meanVel.Add(p.Vel.Scale(p.Mass))
		totalMass += p.Mass
	}
	if totalMass > 0 {
		meanVel = meanVel.Scale(1 / totalMass)
	}

	var disp Matrix3
	for _, i := range indices {
		p := &e.particles[i]
		d := p.Vel.Sub(meanVel)
		disp.AddOuter([3]float64{d[0], d[1], d[2]}, p.Mass)
	}
	if totalMass > 0 {
		disp.Scale(1 / totalMass)
	}

	_, ok := disp.Inverse()

	return Cell{Indices: indices, MeanVel: meanVel, Disp: disp, Singular: !ok}
}

func globalVelDispScale(particles []core.Particle) float64 {
	if len(particles) == 0 {
		return 1
	}
	var mean core.Vec3
	var mass float64
	for _, p := range particles {
		mean = mean.Add(p.Vel.Scale(p.Mass))
		mass += p.Mass
	}
	if mass > 0 {
		mean = mean.Scale(1 / mass)
	}
	var variance float64
	for _, p := range particles {
		d := p.Vel.Sub(mean)
		variance += d.Norm2() * p.Mass
	}
	if mass > 0 {
		variance /= mass
	}
	if variance <= 0 {
		return 1
	}

	return math.Sqrt(variance / 3)
}

// Estimate computes, for every particle in the subset, the Mahalanobis-based
// log-outlier score ℓ = 0.5*(d² - 3) where d² is the particle's velocity
// offset from its cell's mean measured against the cell's mass-weighted
// dispersion — the expected squared Mahalanobis distance under a 3D
// Gaussian is 3, so ℓ>0 flags particles whose velocity is a worse fit to
// the local background than typical. The score is written to
// Particle.Potential (the pipeline's designated outlier-score scratch
// field) in the Estimator's own (tree-reordered) particle slice; callers
// copy Potential back onto their own particle array by matching ID.
func (e *Estimator) Estimate() {
	for i := range e.particles {
		cell := e.cells[e.cellOf[i]]
		disp := cell.Disp
		if cell.Singular {
			disp = Matrix3{
				{e.HaloVelDispScale * e.HaloVelDispScale, 0, 0},
				{0, e.HaloVelDispScale * e.HaloVelDispScale, 0},
				{0, 0, e.HaloVelDispScale * e.HaloVelDispScale},
			}
		}
		inv, ok := disp.Inverse()
		if !ok {
			// Last resort: isotropic unit dispersion keeps ℓ finite rather
			// than surfacing a singular-matrix error mid-pipeline.
			inv = Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		}
		d := e.particles[i].Vel.Sub(cell.MeanVel)
		m2 := inv.QuadForm([3]float64{d[0], d[1], d[2]})
		e.particles[i].Potential = 0.5 * (m2 - 3)
	}
}

// Cells returns the coarse grid built by Build, for callers (e.g. the
// significance filter) that need per-cell statistics directly.
func (e *Estimator) Cells() []Cell {
	return e.cells
}
