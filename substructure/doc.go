// Package substructure implements the recursive outlier-driven
// substructure searcher (spec.md §4.4): a primary outlier-probability FOF
// pass, an iterative expansion stage that grows and merges the primary
// groups, an optional background large-structure pass and halo-core pass,
// significance-filtered termination, and recursion into every surviving
// group large enough to host its own substructure.
package substructure
