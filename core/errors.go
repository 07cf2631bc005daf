package core

import "errors"

// Sentinel errors for particle and label-array operations.
var (
	// ErrEmptyParticles indicates an operation received a zero-length particle slice.
	ErrEmptyParticles = errors.New("core: particle slice is empty")

	// ErrLabelLengthMismatch indicates PFOF does not have one entry per particle.
	ErrLabelLengthMismatch = errors.New("core: label array length does not match particle count")

	// ErrGroupNotFound indicates a requested group id has no members.
	ErrGroupNotFound = errors.New("core: group id not found")

	// ErrInvalidGroupID indicates a group id outside [0, numgroups].
	ErrInvalidGroupID = errors.New("core: group id out of range")

	// ErrBrokenChain indicates a Head/Next/Tail intrusive list failed to
	// terminate at the recorded Tail within NumInGroup steps.
	ErrBrokenChain = errors.New("core: intrusive group chain is broken")
)
