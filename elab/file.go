package elab

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"hdlc/syntax"
)

// DeclFile is the YAML form of a declaration file: source text plus
// procedural assignments run once after elaboration.
type DeclFile struct {
	Source string   `yaml:"source"`
	Init   []string `yaml:"init,omitempty"`
}

// LoadFile elaborates a declaration file. Files ending in .yaml or .yml
// use the DeclFile layout; anything else is plain source text.
func LoadFile(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}

	var df DeclFile
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &df); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		df.Source = string(data)
	}

	d, err := df.Elaborate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Elaborate elaborates the source and runs the init assignments
func (df *DeclFile) Elaborate() (*Design, error) {
	d, err := Elaborate(df.Source)
	if err != nil {
		return nil, err
	}
	for _, line := range df.Init {
		if err := d.Run(line); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Run parses and executes one procedural assignment in the root scope,
// failing on the first error diagnostic.
func (d *Design) Run(assignment string) error {
	stmt, err := syntax.ParseAssignment(assignment)
	if err != nil {
		return fmt.Errorf("init %q: %w", assignment, err)
	}
	diags, ok := d.Execute(d.Root, 0, stmt)
	if !ok {
		if len(diags) > 0 {
			return fmt.Errorf("init %q: %s", assignment, diags[0])
		}
		return fmt.Errorf("init %q: not executed", assignment)
	}
	return nil
}
