package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestDir is the directory holding Logics/Vistache YAML scenario files,
// relative to the conformance package's own directory.
const TestDir = "testdata/conformance"

// LoadedTest is one test case paired with the suite and file it came
// from, for reporting.
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests walks TestDir and loads every *.yaml scenario file.
func LoadAllTests() ([]LoadedTest, error) {
	abs, err := filepath.Abs(TestDir)
	if err != nil {
		return nil, fmt.Errorf("conformance: resolving %s: %w", TestDir, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("conformance: test directory %s not found: %w", abs, err)
	}

	var loaded []LoadedTest
	err = filepath.Walk(abs, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		suite, err := loadSuite(path)
		if err != nil {
			return fmt.Errorf("conformance: %s: %w", path, err)
		}

		relPath, _ := filepath.Rel(abs, path)
		for _, tc := range suite.Tests {
			loaded = append(loaded, LoadedTest{File: relPath, Suite: suite, Test: tc})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

// loadSuite parses a single YAML file into a TestSuite.
func loadSuite(path string) (TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TestSuite{}, err
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return TestSuite{}, err
	}
	return suite, nil
}
