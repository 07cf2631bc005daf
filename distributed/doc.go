// Package distributed models the inter-worker phases of spec.md §5 as
// goroutines and channels standing in for MPI ranks: an all-gather label
// offset step, an iterative boundary-exchange/closure loop, and a
// migration step that reconciles every worker's local group labels into
// one globally consistent label space.
//
// Because every "worker" here is a goroutine inside one process, the
// migration step does not physically move particle structs between
// address spaces the way a real MPI implementation would — it only needs
// to reconcile labels, which LocalCoordinator does directly.
package distributed
