package substructure

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/kdtree"
)

// expand runs spec.md §4.4's iterative expansion: near-cell-size recovery,
// expanded linking to a fixed point, inter-group merger detection, and a
// second, wider expansion pass. labels must already have at least one
// group; chains are rebuilt fresh from it (spec.md §4.4 step 1).
func expand(tree *kdtree.Tree, labels core.Labels, opts config.Options, ellX2, ellV2 float64, filter kdtree.Filter) core.Labels {
	chains := core.BuildChains(labels)
	state := newExpansionState(len(labels), opts.OMPSearchNum, opts.MaxWorkers)

	recoverThreshold := opts.EllThreshold - opts.EllFac
	recoverPred := kdtree.NewStreamProbPredicate(kdtree.StreamProbParams{
		EllX2: ellX2, EllV2: ellV2, VRatio: opts.VRatio, CosThetaOpen: opts.ThetaOpen,
		EllThreshold: recoverThreshold, Period: opts.Period, AdmitSingleHighEll: true,
	})
	runExpansionRound(tree, labels, chains, recoverPred, ellX2, filter, state)

	wideEllX2 := ellX2 * opts.EllXFac * opts.EllXFac
	wideEllV2 := ellV2 * opts.VFac * opts.VFac
	wideTheta := relaxCos(opts.ThetaOpen, opts.ThetaFac)
	widePred := kdtree.NewStreamProbPredicate(kdtree.StreamProbParams{
		EllX2: wideEllX2, EllV2: wideEllV2, VRatio: opts.VRatio, CosThetaOpen: wideTheta,
		EllThreshold: recoverThreshold, Period: opts.Period, AdmitSingleHighEll: true,
	})
	for runExpansionRound(tree, labels, chains, widePred, wideEllX2, filter, state) {
	}

	labels = mergeGroups(tree.Particles(), labels, widePred, opts.FMerge)
	chains = core.BuildChains(labels)

	secondEllX2 := ellX2 * 2.25 * opts.EllXFac * opts.EllXFac
	secondPred := kdtree.NewStreamProbPredicate(kdtree.StreamProbParams{
		EllX2: secondEllX2, EllV2: wideEllV2, VRatio: opts.VRatio, CosThetaOpen: wideTheta,
		EllThreshold: recoverThreshold, Period: opts.Period, AdmitSingleHighEll: true,
	})
	for runExpansionRound(tree, labels, chains, secondPred, secondEllX2, filter, state) {
	}

	return labels
}

func relaxCos(cosThetaOpen, thetaFac float64) float64 {
	relaxed := cosThetaOpen - thetaFac
	if relaxed < -1 {
		return -1
	}

	return relaxed
}

// runExpansionRound implements one DetermineNewLinks/LinkUntagged cycle:
// seed marks with every current group member's label, run SearchCriterion
// from each seed, then append every newly-marked ungrouped particle to its
// target group's chain in O(1). Only labels[p]==0 is ever overwritten — a
// particle already in a group cannot be stolen (spec.md §4.4 step 2
// invariant). Returns whether any particle was newly linked.
func runExpansionRound(tree *kdtree.Tree, labels core.Labels, chains *core.Chains, pred kdtree.Predicate, radius2 float64, filter kdtree.Filter, state *expansionState) bool {
	var seeds []int
	for i, g := range labels {
		if g > 0 {
			seeds = append(seeds, i)
		}
	}

	searchSeeds(tree, labels, seeds, pred, radius2, filter, state)

	changed := false
	for i, g := range labels {
		if g > 0 {
			continue
		}
		m := state.Marks[i]
		if m == 0 {
			continue
		}
		chains.Append(m, i)
		labels[i] = m
		changed = true
	}

	return changed
}

// searchSeeds runs SearchCriterion from every seed, writing into
// state.Marks. Below OMPSearchNum seeds it runs sequentially against a
// single shared mark array, matching SearchCriterion's own tie-break. At
// or above OMPSearchNum, spec.md §5 allocates nnID per worker and reduces:
// each shard gets its own mark buffer (zeroed per round) seeded from
// disjoint seed ranges, and the shards are reduced by "smaller label
// wins", the same tie-break SearchCriterion applies within one buffer.
func searchSeeds(tree *kdtree.Tree, labels core.Labels, seeds []int, pred kdtree.Predicate, radius2 float64, filter kdtree.Filter, state *expansionState) {
	for i := range state.Marks {
		state.Marks[i] = 0
	}

	if len(seeds) < state.OMPSearchNum {
		for _, i := range seeds {
			tree.SearchCriterion(i, radius2, pred, filter, labels[i], state.Marks)
		}

		return
	}

	workers := state.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(seeds) {
		workers = len(seeds)
	}
	shardMarks := make([][]int, workers)
	for w := range shardMarks {
		shardMarks[w] = make([]int, len(state.Marks))
	}

	var g errgroup.Group
	chunk := (len(seeds) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		lo := w * chunk
		hi := lo + chunk
		if hi > len(seeds) {
			hi = len(seeds)
		}
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			marks := shardMarks[w]
			for _, i := range seeds[lo:hi] {
				tree.SearchCriterion(i, radius2, pred, filter, labels[i], marks)
			}

			return nil
		})
	}
	_ = g.Wait()

	for _, marks := range shardMarks {
		for i, m := range marks {
			if m == 0 {
				continue
			}
			if state.Marks[i] == 0 || m < state.Marks[i] {
				state.Marks[i] = m
			}
		}
	}
}

// mergeGroups implements spec.md §4.4 step 4: DetermineGroupLinks counts
// cross-group links at the widened tolerance; MergeGroups absorbs
// neighbor j into i whenever the shared-link count exceeds
// fmerge*oldsize(j), where oldsize is each group's size before this
// expansion pass began. A single pass may cascade, so the whole
// detect-and-merge cycle repeats until no merger occurs.
func mergeGroups(particles []core.Particle, labels core.Labels, pred kdtree.Predicate, fMerge float64) core.Labels {
	for {
		oldSize := core.NumInGroup(labels)
		linkCounts := determineGroupLinks(particles, labels, pred)

		parent := make(map[int]int)
		find := func(g int) int {
			for parent[g] != 0 && parent[g] != g {
				g = parent[g]
			}

			return g
		}

		merged := false
		for key, count := range linkCounts {
			i, j := key[0], key[1]
			if float64(count) <= fMerge*float64(oldSize[j]) {
				continue
			}
			ri, rj := find(i), find(j)
			if ri == 0 {
				ri = i
			}
			if rj == 0 {
				rj = j
			}
			if ri == rj {
				continue
			}
			if ri < rj {
				parent[rj] = ri
			} else {
				parent[ri] = rj
			}
			merged = true
		}
		if !merged {
			return labels
		}

		for i, g := range labels {
			if g == 0 {
				continue
			}
			labels[i] = find(g)
		}
	}
}

// determineGroupLinks counts, for every pair of distinct groups (i<j), the
// number of particle pairs linking them under pred.
func determineGroupLinks(particles []core.Particle, labels core.Labels, pred kdtree.Predicate) map[[2]int]int {
	counts := make(map[[2]int]int)
	n := len(particles)
	for i := 0; i < n; i++ {
		gi := labels[i]
		if gi == 0 {
			continue
		}
		for j := i + 1; j < n; j++ {
			gj := labels[j]
			if gj == 0 || gj == gi {
				continue
			}
			if !pred(&particles[i], &particles[j]) {
				continue
			}
			key := [2]int{gi, gj}
			if gi > gj {
				key = [2]int{gj, gi}
			}
			counts[key]++
		}
	}

	return counts
}
