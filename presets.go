package reveal

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Built-in spring presets. "default" is DefaultSpring.
var builtinPresets = map[string]SpringConfig{
	"default": DefaultSpring,
	"gentle":  {Stiffness: 120, Damping: 20, Mass: 1, Precision: 0.001},
	"snappy":  {Stiffness: 300, Damping: 35, Mass: 1, Precision: 0.001},
	"wobbly":  {Stiffness: 180, Damping: 12, Mass: 1, Precision: 0.001},
}

// Preset returns the built-in spring called name.
func Preset(name string) (SpringConfig, bool) {
	c, ok := builtinPresets[name]
	return c, ok
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// presetFile is the YAML layout accepted by ParsePresets:
//
//	springs:
//	  bouncy:
//	    stiffness: 200
//	    damping: 10
//	    mass: 1
//	    precision: 0.001
//
// Omitted mass and precision default to DefaultSpring's values.
type presetFile struct {
	Springs map[string]SpringConfig `yaml:"springs"`
}

// ParsePresets decodes spring presets from YAML and validates each one.
func ParsePresets(data []byte) (map[string]SpringConfig, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	out := make(map[string]SpringConfig, len(f.Springs))
	for name, c := range f.Springs {
		if c.Mass == 0 {
			c.Mass = DefaultSpring.Mass
		}
		if c.Precision == 0 {
			c.Precision = DefaultSpring.Precision
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("parse presets: spring %q: %w", name, err)
		}
		out[name] = c
	}
	return out, nil
}
