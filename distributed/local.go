package distributed

import (
	"context"
	"sort"

	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
	"golang.org/x/sync/errgroup"
)

// LocalCoordinator is a single-process Coordinator: every Worker is a
// goroutine-addressable struct sharing this process's memory, standing in
// for an MPI rank per SPEC_FULL.md §6.8. It drives the three collective
// phases of spec.md §5: an offset pass (here a no-op — see Run), an
// iterative boundary-exchange closure, and a migration pass that
// reconciles every worker's labels into one global id space.
type LocalCoordinator struct {
	Workers []Worker

	// Pred is the same predicate the local 3D (or 6D) FOF pass used;
	// re-applied across worker boundaries so cross-boundary linking uses
	// an identical rule to the intra-worker pass.
	Pred kdtree.Predicate

	// Radius2 bounds the boundary search, matching the link length the
	// local pass used.
	Radius2 float64

	// BoundaryMargin is the distance from a worker's domain edge within
	// which a grouped particle is considered exportable (spec.md §5 step
	// 2: "local grouped particles have a neighborhood touching another
	// worker's domain").
	BoundaryMargin float64

	// MaxIterations caps the closure loop as a safety backstop; the loop
	// ordinarily terminates when a pass finds zero new links.
	MaxIterations int
}

type exportRecord struct {
	rank    int
	label   int
	pos     core.Vec3
	vel     core.Vec3
	mass    float64
	u       float64
}

// Run executes the distributed closure described in spec.md §5:
//  1. All-gather numgroups → every worker computes its id offset. Because
//     LocalCoordinator's globalID already carries (rank, label), no
//     numeric offset is needed for correctness; this step is therefore a
//     validation pass only (every worker must report, or it's a desync).
//  2. Boundary exchange + 3: iteratively find cross-boundary links until a
//     pass adds zero.
//  4. Migration: canonicalize every merged group to one global id and
//     give each worker a new Labels slice through SetLabels.
func (c *LocalCoordinator) Run(ctx context.Context) error {
	if len(c.Workers) == 0 {
		return ErrNoWorkers
	}
	for _, w := range c.Workers {
		if w == nil {
			return ErrDesync
		}
	}

	uf := newGroupUnionFind()
	maxIter := c.MaxIterations
	if maxIter <= 0 {
		maxIter = 64
	}
	for iter := 0; iter < maxIter; iter++ {
		newLinks, err := c.boundaryExchange(ctx, uf)
		if err != nil {
			return err
		}
		if newLinks == 0 {
			break
		}
	}

	c.migrate(uf)

	return nil
}

// boundaryExchange runs one pass of export/import/search/report: every
// worker computes its exportable (boundary, grouped) particles, and every
// other worker searches its local tree against those imports, reporting
// new unions. Workers are processed concurrently via errgroup, mirroring
// the fork-join shape SPEC_FULL.md §7 names for intra-worker parallelism,
// reused here across the inter-worker fan-out.
func (c *LocalCoordinator) boundaryExchange(ctx context.Context, uf *groupUnionFind) (int, error) {
	exports := make([][]exportRecord, len(c.Workers))
	for i, w := range c.Workers {
		exports[i] = c.collectExports(w)
	}

	type unionPair struct{ a, b globalID }
	results := make([][]unionPair, len(c.Workers))

	g, _ := errgroup.WithContext(ctx)
	for i, w := range c.Workers {
		i, w := i, w
		g.Go(func() error {
			var pairs []unionPair
			tree := w.Tree()
			labels := w.Labels()
			if tree == nil {
				return nil
			}
			for _, recs := range exports {
				if len(recs) == 0 || recs[0].rank == w.Rank() {
					continue
				}
				for _, rec := range recs {
					candidates := tree.RangeIndices(rec.pos, c.Radius2)
					for _, idx := range candidates {
						if labels[idx] == 0 {
							continue
						}
						p := &tree.Particles()[idx]
						q := &core.Particle{Pos: rec.pos, Vel: rec.vel, Mass: rec.mass, U: rec.u}
						if c.Pred(p, q) {
							pairs = append(pairs, unionPair{
								a: globalID{rank: w.Rank(), label: labels[idx]},
								b: globalID{rank: rec.rank, label: rec.label},
							})
						}
					}
				}
			}
			results[i] = pairs

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	newLinks := 0
	for _, pairs := range results {
		for _, pr := range pairs {
			if uf.union(pr.a, pr.b) {
				newLinks++
			}
		}
	}

	return newLinks, nil
}

func (c *LocalCoordinator) collectExports(w Worker) []exportRecord {
	tree := w.Tree()
	if tree == nil || tree.Len() == 0 {
		return nil
	}
	root := tree.NodeAt(tree.Root())
	labels := w.Labels()
	particles := tree.Particles()

	var out []exportRecord
	for i, p := range particles {
		if labels[i] == 0 {
			continue
		}
		if !nearBoundary(p.Pos, root.Min, root.Max, c.BoundaryMargin) {
			continue
		}
		out = append(out, exportRecord{
			rank: w.Rank(), label: labels[i],
			pos: p.Pos, vel: p.Vel, mass: p.Mass, u: p.U,
		})
	}

	return out
}

func nearBoundary(pos, min, max core.Vec3, margin float64) bool {
	for a := 0; a < 3; a++ {
		if pos[a]-min[a] <= margin || max[a]-pos[a] <= margin {
			return true
		}
	}

	return false
}

// migrate canonicalizes every merged group to one global id, ordered
// deterministically by each merged set's smallest (rank, label) member,
// and hands every worker a new Labels slice through SetLabels (the old
// slice is left as it was). No particle data is
// physically moved between workers: LocalCoordinator's workers already
// share this process's address space, so migration here is purely a
// relabeling step (see package doc).
func (c *LocalCoordinator) migrate(uf *groupUnionFind) {
	roots := make(map[globalID][]globalID)
	for _, w := range c.Workers {
		for _, label := range w.Labels() {
			if label == 0 {
				continue
			}
			id := globalID{rank: w.Rank(), label: label}
			r := uf.find(id)
			roots[r] = append(roots[r], id)
		}
	}

	type rootKey struct {
		root globalID
		min  globalID
	}
	var keys []rootKey
	for r, members := range roots {
		min := members[0]
		for _, m := range members {
			if m.rank < min.rank || (m.rank == min.rank && m.label < min.label) {
				min = m
			}
		}
		keys = append(keys, rootKey{root: r, min: min})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].min.rank != keys[j].min.rank {
			return keys[i].min.rank < keys[j].min.rank
		}

		return keys[i].min.label < keys[j].min.label
	})

	canonical := make(map[globalID]int, len(keys))
	for i, k := range keys {
		canonical[k.root] = i + 1
	}

	for _, w := range c.Workers {
		labels := w.Labels()
		out := make(core.Labels, len(labels))
		for i, label := range labels {
			if label == 0 {
				continue
			}
			r := uf.find(globalID{rank: w.Rank(), label: label})
			out[i] = canonical[r]
		}
		w.SetLabels(out)
	}
}
