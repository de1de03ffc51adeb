package legend

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Hall selects the laboratory site hosting the experiment.
type Hall string

const (
	HallLNGS   Hall = "lngs"
	HallSNOLab Hall = "snolab"
)

var validHalls = map[Hall]bool{
	HallLNGS:   true,
	HallSNOLab: true,
}

// SetupSpec is the top-level geometry configuration.
// Loaded from YAML via LoadSetupSpec(path). The zero value builds the
// default setup: LNGS hall, infrastructure only.
type SetupSpec struct {
	Version   string `yaml:"version,omitempty"`
	Hall      Hall   `yaml:"hall,omitempty"`
	Filled    bool   `yaml:"filled,omitempty"`
	Detectors string `yaml:"detectors,omitempty"`
	Output    string `yaml:"output,omitempty"`
}

// LoadSetupSpec reads and parses a YAML setup file.
// Uses strict parsing: unrecognized keys (typos) are rejected. A
// relative detectors path is resolved against the directory of the
// setup file.
func LoadSetupSpec(path string) (*SetupSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading setup spec: %w", err)
	}
	var spec SetupSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing setup spec %s: %w", path, err)
	}
	if spec.Detectors != "" && !filepath.IsAbs(spec.Detectors) {
		spec.Detectors = filepath.Join(filepath.Dir(path), spec.Detectors)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid. An empty
// hall is valid and means the default, LNGS.
func (s *SetupSpec) Validate() error {
	if s.Version != "" && s.Version != "1" {
		return fmt.Errorf("unknown setup spec version %q; this build reads version 1", s.Version)
	}
	if s.Hall != "" && !validHalls[s.Hall] {
		return fmt.Errorf("unknown hall %q; valid: lngs, snolab", s.Hall)
	}
	return nil
}
