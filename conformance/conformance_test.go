package conformance

import "testing"

// TestConformance loads every YAML scenario under testdata/conformance
// and runs it against the real parser/eval/template stack, mirroring
// the teacher's conformance_test.go table-driven shape.
func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load tests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no tests loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)

	fileGroups := make(map[string][]TestResult)
	for _, result := range results {
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	for file, fileResults := range fileGroups {
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				result := result
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skipf("skipped: %s", result.SkipReason)
						return
					}
					if !result.Passed {
						if result.Error != nil {
							t.Errorf("%v", result.Error)
						} else {
							t.Error("test failed")
						}
					}
				})
			}
		})
	}

	stats := ComputeStats(results)
	t.Logf("\n=== Summary ===\n%s", FormatStats(stats))
}

func TestLoadAllTests(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load tests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("expected at least one loaded test case")
	}

	first := tests[0]
	if first.Test.Name == "" {
		t.Error("test has no name")
	}
	if first.File == "" {
		t.Error("test has no file path")
	}

	files := make(map[string]bool)
	for _, test := range tests {
		files[test.File] = true
	}
	t.Logf("loaded %d test cases from %d files", len(tests), len(files))
}

func TestYAMLScenariosWellFormed(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load tests: %v", err)
	}

	for _, test := range tests {
		tc := test.Test
		if tc.Name == "" {
			t.Errorf("%s: test has no name", test.File)
		}
		if tc.Expression == "" && tc.Template == "" {
			t.Errorf("%s/%s: neither expression nor template set", test.File, tc.Name)
		}
		if tc.Expect.Value == nil && tc.Expect.Type == "" && tc.Expect.Contains == "" && !tc.Expect.IsError {
			t.Errorf("%s/%s: no expectation specified", test.File, tc.Name)
		}
	}
}
