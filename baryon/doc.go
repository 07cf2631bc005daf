// Package baryon implements the Baryon Associator (spec.md §4.7): for each
// gas or star particle, find the k nearest grouped dark-matter particles
// in the phase-space metric used for halo FOF, assign it to the group of
// the closest neighbor passing the 6D predicate, and — in all-particle-FOF
// mode — enforce the substructure affinity rule that only lets a baryon
// move to a smaller group than its current one.
package baryon
