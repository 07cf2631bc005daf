// Package config defines the closed enumeration of recognized pipeline
// options (spec.md §6) as a typed Options struct, populated via
// DefaultOptions and functional Option setters, or loaded from a YAML
// parameter file with LoadYAML.
package config
