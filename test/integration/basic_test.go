// Package integration contains integration tests for numdoc.
package integration

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/numdoc/numdoc/pkg/numdoc"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

// Execution changes the working directory per group, so these tests do
// not run in parallel.

func TestTutorialFile(t *testing.T) {
	path := filepath.Join(fixturesDir(), "tutorial", "tutorial.txt")

	var stdout, stderr bytes.Buffer
	result, _, err := numdoc.TestFile(path, numdoc.Options{Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		t.Fatalf("TestFile returned error: %v", err)
	}
	if result.Failed != 0 {
		t.Errorf("result = %+v\nreport:\n%s", result, stderr.String())
	}
	// The skipped example is not attempted, everything else is,
	// assignments included.
	if result.Attempted != 8 {
		t.Errorf("attempted = %d, want 8", result.Attempted)
	}
}

func TestFailingFile(t *testing.T) {
	path := filepath.Join(fixturesDir(), "tutorial", "failing.txt")

	var stdout, stderr bytes.Buffer
	result, _, err := numdoc.TestFile(path, numdoc.Options{Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		t.Fatalf("TestFile returned error: %v", err)
	}
	if result.Failed != 1 || result.Attempted != 2 {
		t.Errorf("result = %+v", result)
	}
	if !strings.Contains(stderr.String(), "Failed example:") {
		t.Errorf("report = %q, want a failure transcript", stderr.String())
	}
}

func TestDemoPackage(t *testing.T) {
	dir := filepath.Join(fixturesDir(), "demo")

	var stdout, stderr bytes.Buffer
	result, history, err := numdoc.TestPackage(dir, numdoc.Options{Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		t.Fatalf("TestPackage returned error: %v", err)
	}
	if result.Failed != 0 {
		t.Errorf("result = %+v\nreport:\n%s", result, stderr.String())
	}
	for _, name := range []string{"demo", "demo.Twice", "demo.Half", "demo.Old"} {
		if _, ok := history[name]; !ok {
			t.Errorf("history missing %q: %v", name, history)
		}
	}
}

func TestDemoPackage_WithConfig(t *testing.T) {
	dir := filepath.Join(fixturesDir(), "demo")

	var stdout, stderr bytes.Buffer
	result, history, err := numdoc.TestPackage(dir, numdoc.Options{
		ConfigFile: filepath.Join(dir, "numdoc.json"),
		Stdout:     &stdout,
		Stderr:     &stderr,
	})
	if err != nil {
		t.Fatalf("TestPackage returned error: %v", err)
	}
	if result.Failed != 0 {
		t.Errorf("result = %+v\nreport:\n%s", result, stderr.String())
	}
	if _, ok := history["demo.Old"]; ok {
		t.Errorf("history = %v, demo.Old is skip-listed", history)
	}
}

func TestFindDemoPackage(t *testing.T) {
	dir := filepath.Join(fixturesDir(), "demo")

	names, err := numdoc.Find(dir, numdoc.Options{Stderr: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	want := map[string]bool{"demo": true, "demo.Twice": true, "demo.Half": true, "demo.Old": true}
	if len(names) != len(want) {
		t.Fatalf("Find = %v", names)
	}
	for _, name := range names {
		if !want[name] {
			t.Errorf("unexpected name %q", name)
		}
	}
}
