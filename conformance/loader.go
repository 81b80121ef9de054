package conformance

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultDir is where the suites live, relative to the module root
const DefaultDir = "conformance/testdata"

// LoadedSuite is a suite with the file it came from
type LoadedSuite struct {
	File  string // relative to the directory passed to LoadDir
	Suite TestSuite
}

// LoadDir walks dir and loads every .yaml suite in lexical order
func LoadDir(dir string) ([]LoadedSuite, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".yaml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	suites := make([]LoadedSuite, 0, len(paths))
	for _, path := range paths {
		suite, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		suites = append(suites, LoadedSuite{File: filepath.ToSlash(rel), Suite: *suite})
	}
	return suites, nil
}

// LoadFile parses a single suite. Unknown keys are errors so that a
// misspelled expectation cannot pass silently.
func LoadFile(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	suite, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return suite, nil
}

// Parse decodes a suite and checks that every test can be run
func Parse(data []byte) (*TestSuite, error) {
	var suite TestSuite
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		return nil, err
	}
	for i, tc := range suite.Tests {
		if tc.Name == "" {
			return nil, fmt.Errorf("test %d has no name", i)
		}
		if tc.Op == "" {
			return nil, fmt.Errorf("test %q has no op", tc.Name)
		}
		if tc.Expect.IsEmpty() {
			return nil, fmt.Errorf("test %q has no expectation", tc.Name)
		}
	}
	return &suite, nil
}
