package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestPath is where the suites live, relative to this package
const TestPath = "testdata"

// LoadedTest is a case together with its suite and source file
type LoadedTest struct {
	File  string
	Suite *Suite
	Test  TestCase
}

// LoadAllTests loads every suite under TestPath
func LoadAllTests() ([]LoadedTest, error) {
	candidates := []string{
		TestPath,
		filepath.Join("conformance", TestPath), // from the module root
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return LoadDir(candidate)
		}
	}
	return nil, fmt.Errorf("could not find conformance suites (tried %v)", candidates)
}

// LoadDir walks dir for .yaml and .md suites. A file that fails to load
// fails the whole walk.
func LoadDir(dir string) ([]LoadedTest, error) {
	var loaded []LoadedTest
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml", ".md":
		default:
			return nil
		}

		suite, err := LoadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		for _, tc := range suite.Tests {
			loaded = append(loaded, LoadedTest{File: filepath.ToSlash(rel), Suite: suite, Test: tc})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

// LoadFile parses one suite file, YAML or Markdown by extension
func LoadFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite *Suite
	if filepath.Ext(path) == ".md" {
		suite, err = ExtractSuite(string(data))
	} else {
		suite = &Suite{}
		err = yaml.Unmarshal(data, suite)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if suite.Name == "" {
		suite.Name = filepath.Base(path)
	}
	for i, tc := range suite.Tests {
		if tc.Name == "" {
			return nil, fmt.Errorf("%s: case %d has no name", path, i)
		}
		if !tc.HasInput() {
			return nil, fmt.Errorf("%s: case %q has no expr or assign", path, tc.Name)
		}
	}
	return suite, nil
}
