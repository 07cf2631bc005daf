// Package core defines the particle data model shared by every phase of the
// structure-finding pipeline: the Particle record, the group label array
// PFOF, and the intrusive-list group auxiliaries (Head/Next/Tail/Len) built
// on top of it.
//
// None of these types own particle memory beyond the flat slice the caller
// provides: the pipeline reorders particles in place (sorts, reference-frame
// shifts) and repeatedly overwrites PFOF, but a Particle's ID is the only
// field guaranteed to survive every phase.
//
// Invariants (enforced by ValidateLabels, used by tests and callers that
// want a cheap sanity check — the pipeline itself does not call it on every
// phase boundary):
//
//	PFOF[i] == 0 iff particle i is ungrouped.
//	NumInGroup[g] == |{i : PFOF[i]==g}| whenever both are present.
//	Group ids returned at the top of any public call are contiguous [1..n].
package core
