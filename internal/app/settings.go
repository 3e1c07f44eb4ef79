package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings merges the YAML file at ConfigPath, if any, with the -set
// overrides into the key/value map handed to a sim factory. Overrides win.
func (c *Config) Settings() (map[string]string, error) {
	out := map[string]string{}
	if c.ConfigPath != "" {
		raw, err := os.ReadFile(c.ConfigPath)
		if err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", c.ConfigPath, err)
		}
		for k, v := range doc {
			switch v.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("parse %s: key %q must be a scalar", c.ConfigPath, k)
			}
			out[k] = fmt.Sprint(v)
		}
	}
	for k, v := range c.Overrides.Map() {
		out[k] = v
	}
	return out, nil
}
