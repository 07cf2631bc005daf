package pipeline

import (
	"go.uber.org/zap"

	"github.com/haloforge/strux/baryon"
	"github.com/haloforge/strux/config"
	"github.com/haloforge/strux/core"
	"github.com/haloforge/strux/hierarchy"
)

// Context bundles the configuration, logger, and phase-scoped scratch
// state one Run call needs — the explicit reshape of spec.md §9's "global
// mutable state" note: lifetime is exactly one pipeline invocation, never
// shared across calls.
type Context struct {
	Options config.Options
	Logger  *zap.Logger
}

// NewContext builds a Context with a production zap logger. Callers that
// already have a *zap.Logger (e.g. a host service wiring its own) should
// construct Context directly instead.
func NewContext(opts config.Options) (*Context, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	return &Context{Options: opts, Logger: logger}, nil
}

// Result is Run's output: the finalized group labels parallel to the
// input particle snapshot, the flattened structure hierarchy, the total
// mass of every group (exclusive or inclusive of its substructure's mass,
// per ctx.Options.InclusiveHalo), and — when baryon association ran — the
// per-group baryonic summary.
type Result struct {
	PFOF      core.Labels
	Hierarchy hierarchy.Hierarchy
	GroupMass map[hierarchy.GroupHandle]float64
	Baryon    map[int]*baryon.GroupBaryonicSummary
}
