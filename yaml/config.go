// Package yaml loads per-novel configuration from YAML files.
package yaml

import (
	"os"

	"github.com/fwojciec/pageturner"
	"gopkg.in/yaml.v3"
)

// Load reads, parses, normalizes and validates a configuration file.
// Any failure returns an ECONFIG error; the run must abort before any
// network activity.
func Load(path string) (*pageturner.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pageturner.Errorf(pageturner.ECONFIG, "cannot read configuration file %q: %v", path, err)
	}

	var cfg pageturner.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pageturner.Errorf(pageturner.ECONFIG, "cannot parse configuration file %q: %v", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
