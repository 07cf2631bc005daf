// Package strux finds hierarchical phase-space structure in N-body
// cosmological simulation snapshots — the VELOCIraptor-STF approach: a
// 3D friends-of-friends halo pass, an optional 6D phase-space refinement,
// a recursive outlier-driven substructure search with iterative
// expansion and merger resolution, an optional halo-core pass, and
// baryon association.
//
// Under the hood, everything is organized into focused subpackages:
//
//	core/          — Particle, Vec3, Labels and the other shared data types
//	kdtree/        — the spatial index: build, FOF, predicates, kNN
//	density/       — the local-density/outlier estimator
//	config/        — pipeline configuration, validation, YAML loading
//	distributed/   — cross-domain reconciliation for sharded FOF
//	fof/           — the halo-pass FOF engine (3D + optional 6D refinement)
//	significance/  — the Poisson significance filter
//	hierarchy/     — the structure-level manager and flattened catalog
//	substructure/  — the recursive outlier-driven substructure searcher
//	baryon/        — gas/star-to-dark-matter-group association
//	pipeline/      — the entry point wiring every phase together
//	testgen/       — deterministic synthetic snapshots for the worked
//	                 end-to-end scenarios
//
//	go get github.com/haloforge/strux
package strux
