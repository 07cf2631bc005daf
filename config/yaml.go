package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a parameter file in the shape of VELOCIraptor-STF's own
// configuration file (original_source/stf) and decodes it onto a copy of
// DefaultOptions, so a parameter file only needs to specify the keys it
// wants to override. The result is validated before being returned.
func LoadYAML(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrLoadYAML, err)
	}

	o := DefaultOptions()
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrLoadYAML, err)
	}

	if err := o.Validate(); err != nil {
		return Options{}, err
	}

	return o, nil
}
