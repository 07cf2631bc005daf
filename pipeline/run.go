package pipeline

import (
	"errors"

	"go.uber.org/zap"

	"github.com/haloforge/strux/baryon"
	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/fof"
	"github.com/haloforge/strux/hierarchy"
	"github.com/haloforge/strux/substructure"
)

// Run drives the full structure-finding pipeline over one particle
// snapshot: halo-pass FOF, recursive substructure search seeded into the
// hierarchy manager, and — when ctx.Options.BaryonSearch is enabled —
// baryon association. The phases work on copies, so particles keeps its
// order and Result.PFOF is indexed parallel to it.
func Run(ctx *Context, particles []core.Particle) (*Result, error) {
	if err := ctx.Options.Validate(); err != nil {
		return nil, err
	}
	if len(particles) == 0 {
		return nil, ErrNoParticles
	}

	dmIdx, baryonIdx := splitByType(particles, ctx.Options)
	dm := make([]core.Particle, len(dmIdx))
	for i, idx := range dmIdx {
		dm[i] = particles[idx]
	}

	ctx.Logger.Info("running halo pass", zap.Int("n_dark", len(dm)))

	haloResult, err := fof.SearchFullSet(dm, ctx.Options)
	if err != nil {
		return nil, err
	}

	mgr := hierarchy.NewManager()
	root := mgr.AppendLevel(0)

	pfof := make(core.Labels, len(particles))
	idToPos := make(map[int64]int, len(particles))
	for i, p := range particles {
		idToPos[p.ID] = i
	}

	handleByRawGroup := make(map[int]hierarchy.GroupHandle, haloResult.Labels.NumGroups())

	numHalos := haloResult.Labels.NumGroups()
	for g := 1; g <= numHalos; g++ {
		var members []int
		for j, lg := range haloResult.Labels {
			if lg == g {
				members = append(members, idToPos[dm[j].ID])
			}
		}
		if len(members) == 0 {
			continue
		}

		handle := mgr.AddGroup(root, members[0], -1, hierarchy.StructureTypeAt(0))
		handleByRawGroup[g] = handle
		for _, idx := range members {
			pfof[idx] = int(handle) + 1
		}

		if len(members) > ctx.Options.MinCellSize {
			ctx.Logger.Debug("recursing into halo", zap.Int("halo_size", len(members)))
			if err := substructure.SearchSubSub(particles, members, pfof, ctx.Options, 0, mgr, root, handle); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{PFOF: pfof, Hierarchy: mgr.GetHierarchy()}

	if ctx.Options.BaryonSearch == config.BaryonSearchSeparate && len(baryonIdx) > 0 {
		baryonParticles := make([]core.Particle, len(baryonIdx))
		for i, idx := range baryonIdx {
			baryonParticles[i] = particles[idx]
		}

		assigned, summary, err := baryon.Associate(dm, haloResult.Labels, baryonParticles, nil, baryon.Params{
			K:      8,
			EllX:   ctx.Options.EllHaloPhysFac * ctx.Options.EllPhys,
			EllV:   ctx.Options.EllVel * 16,
			Period: ctx.Options.Period,
		})
		if err != nil && !errors.Is(err, baryon.ErrNoDarkMatterGroups) {
			return nil, err
		}
		if err == nil {
			// assigned/summary are keyed by fof.SearchFullSet's raw halo
			// group numbers; remap to the hierarchy.GroupHandle-based ids
			// pfof uses everywhere else before merging them in.
			for i, idx := range baryonIdx {
				if handle, ok := handleByRawGroup[assigned[i]]; ok {
					pfof[idx] = int(handle) + 1
				}
			}
			result.Baryon = remapBaryonSummary(summary, handleByRawGroup)
		}
	}

	result.GroupMass = computeGroupMass(particles, pfof, mgr, ctx.Options.InclusiveHalo)

	ctx.Logger.Info("pipeline complete", zap.Int("n_structures", len(result.Hierarchy.Handles)))

	return result, nil
}

// remapBaryonSummary rekeys a baryon.Associate summary — built against
// fof.SearchFullSet's raw halo group numbers — onto the
// hierarchy.GroupHandle-based ids (handle+1) pfof uses.
func remapBaryonSummary(summary map[int]*baryon.GroupBaryonicSummary, handleByRawGroup map[int]hierarchy.GroupHandle) map[int]*baryon.GroupBaryonicSummary {
	out := make(map[int]*baryon.GroupBaryonicSummary, len(summary))
	for g, s := range summary {
		if handle, ok := handleByRawGroup[g]; ok {
			out[int(handle)+1] = s
		}
	}

	return out
}

// computeGroupMass sums each group's own particle mass (pfof is keyed by
// handle+1 at every level), then — when inclusive is set — rolls each
// group's mass up into every ancestor's total per spec.md §9's inclusive-
// vs-exclusive halo mass decision (DESIGN.md).
func computeGroupMass(particles []core.Particle, pfof core.Labels, mgr *hierarchy.Manager, inclusive bool) map[hierarchy.GroupHandle]float64 {
	own := make(map[hierarchy.GroupHandle]float64)
	for i, g := range pfof {
		if g == 0 {
			continue
		}
		own[hierarchy.GroupHandle(g-1)] += particles[i].Mass
	}

	if inclusive {
		return mgr.RollupInclusiveMass(own)
	}

	return own
}

// splitByType partitions particles into dark-matter and baryon (gas/star)
// index sets according to opts.PartSearchType: SearchDMOnly restricts
// neighbor lookups to dark matter, matching spec.md §6's partsearchtype.
func splitByType(particles []core.Particle, opts config.Options) (dm, baryons []int) {
	for i, p := range particles {
		switch p.Type {
		case core.Dark:
			dm = append(dm, i)
		case core.Gas, core.Star:
			baryons = append(baryons, i)
			if opts.PartSearchType == config.SearchAll {
				dm = append(dm, i)
			}
		default:
			dm = append(dm, i)
		}
	}

	return dm, baryons
}
