package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidOption is wrapped with context by Validate when a field
	// fails a precondition (negative link length, MinSize<1, ...).
	ErrInvalidOption = errors.New("config: invalid option")

	// ErrLoadYAML wraps failures reading or parsing a YAML parameter file.
	ErrLoadYAML = errors.New("config: failed to load YAML")
)
